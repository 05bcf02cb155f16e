package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"banking-suite/internal/api/handler/dto"
	"banking-suite/internal/domain/loan"
	"banking-suite/internal/pkg/apperrors"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	if s == nil {
		panic("loan service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

// CreateLoan handles POST /loans
// @Summary Create a new loan
// @Description Issues a Home Loan with the default limit for the given mobile number.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanRequest true "Loan creation request"
// @Success 201 {object} dto.LoanResponse "Loan successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Loan already exists for the given mobile number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create loan request")

	var req dto.CreateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	createdLoan, err := h.service.CreateLoan(r.Context(), req.MobileNumber)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to create loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(createdLoan)
	h.logger.InfoContext(r.Context(), "Loan created successfully", slog.String("loanNumber", resp.LoanNumber))
	respondJSON(w, http.StatusCreated, resp)
}

// GetLoan handles GET /loans/{mobileNumber}
// @Summary Retrieve loan details
// @Description Retrieves the loan held by the given mobile number.
// @Tags Loans
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Success 200 {object} dto.LoanResponse "Loan details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{mobileNumber} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get loan request")

	l, err := h.service.FetchLoan(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to fetch loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewLoanResponse(l)
	h.logger.InfoContext(r.Context(), "Loan retrieved successfully", slog.String("loanNumber", resp.LoanNumber))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateLoan handles PUT /loans
// @Summary Update loan details
// @Description Updates the loan identified by the loan number in the payload. The outstanding amount must equal total minus paid.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.UpdateLoanRequest true "Loan update request"
// @Success 200 {boolean} boolean "Update outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or inconsistent amounts"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [put]
// @Security BearerAuth
func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received update loan request")

	var req dto.UpdateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.service.UpdateLoan(r.Context(), req.ToDomain())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan updated successfully", slog.String("loanNumber", req.LoanNumber))
	respondJSON(w, http.StatusOK, updated)
}

// DeleteLoan handles DELETE /loans/{mobileNumber}
// @Summary Delete a loan
// @Description Deletes the loan held by the given mobile number.
// @Tags Loans
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Success 200 {boolean} boolean "Deletion outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{mobileNumber} [delete]
// @Security BearerAuth
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received delete loan request")

	deleted, err := h.service.DeleteLoan(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete loan", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan deleted successfully")
	respondJSON(w, http.StatusOK, deleted)
}
