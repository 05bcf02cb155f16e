package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"banking-suite/internal/api/handler/dto"
	"banking-suite/internal/domain/account"
	"banking-suite/internal/pkg/apperrors"
	"banking-suite/internal/pkg/correlation"
)

type CustomerHandler struct {
	service account.CustomerDetailsService
	logger  *slog.Logger
}

func NewCustomerHandler(s account.CustomerDetailsService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer details service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// GetCustomerDetails handles GET /customers/{mobileNumber}/details
// @Summary Retrieve aggregated customer details
// @Description Returns the customer with their account plus the loan and card sections fetched from the sibling services. A section is omitted when its service is unavailable.
// @Tags Customers
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Param bank-correlation-id header string false "Correlation identifier propagated to downstream services"
// @Success 200 {object} dto.CustomerDetailsResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Customer or account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{mobileNumber}/details [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomerDetails(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	correlationID := r.Header.Get(correlation.Header)
	if correlationID == "" {
		correlationID = correlation.ID(r.Context())
	}

	h.logger.DebugContext(r.Context(), "Received customer details request", slog.String("correlationID", correlationID))

	details, err := h.service.FetchCustomerDetails(r.Context(), mobileNumber, correlationID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to fetch customer details", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerDetailsResponse(details)
	h.logger.InfoContext(r.Context(), "Customer details retrieved successfully",
		slog.String("correlationID", correlationID),
		slog.Bool("hasLoan", resp.Loan != nil),
		slog.Bool("hasCard", resp.Card != nil),
	)
	respondJSON(w, http.StatusOK, resp)
}
