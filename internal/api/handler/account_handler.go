package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"banking-suite/internal/api/handler/dto"
	"banking-suite/internal/domain/account"
	"banking-suite/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type AccountHandler struct {
	service account.AccountService
	logger  *slog.Logger
}

func NewAccountHandler(s account.AccountService, l *slog.Logger) *AccountHandler {
	if s == nil {
		panic("account service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AccountHandler{
		service: s,
		logger:  l.With("component", "AccountHandler"),
	}
}

func getMobileNumberFromURL(r *http.Request) (string, error) {
	mobileNumber := chi.URLParam(r, "mobileNumber")
	if mobileNumber == "" {
		return "", fmt.Errorf("%w: mobileNumber not found in URL path", apperrors.ErrInvalidArgument)
	}
	return mobileNumber, nil
}

// CreateAccount handles POST /accounts
// @Summary Create a new account
// @Description Registers a customer and opens a savings account for them in one step.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account creation request"
// @Success 201 {object} dto.AccountResponse "Account successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Customer already registered with the given mobile number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts [post]
// @Security BearerAuth
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create account request")

	var req dto.CreateAccountRequest
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

	createdAccount, err := h.service.CreateAccount(r.Context(), req.Name, req.Email, req.MobileNumber)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to create account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAccountResponse(createdAccount)
	h.logger.InfoContext(r.Context(), "Account created successfully", slog.Int64("accountNumber", resp.AccountNumber))
	respondJSON(w, http.StatusCreated, resp)
}

// GetAccount handles GET /accounts/{mobileNumber}
// @Summary Retrieve account details
// @Description Retrieves the customer and account for the given mobile number.
// @Tags Accounts
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Success 200 {object} dto.CustomerAccountResponse "Account details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{mobileNumber} [get]
// @Security BearerAuth
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get account request")

	ca, err := h.service.FetchAccount(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to fetch account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerAccountResponse(ca)
	h.logger.InfoContext(r.Context(), "Account retrieved successfully", slog.Int64("accountNumber", resp.Account.AccountNumber))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateAccount handles PUT /accounts
// @Summary Update account details
// @Description Updates the mutable customer and account fields identified by the account number in the payload.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.CustomerAccountRequest true "Account update request"
// @Success 200 {boolean} boolean "Update outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Account or customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts [put]
// @Security BearerAuth
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received update account request")

	var req dto.CustomerAccountRequest
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

	updated, err := h.service.UpdateAccount(r.Context(), req.ToDomain())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Account updated successfully", slog.Int64("accountNumber", req.Account.AccountNumber))
	respondJSON(w, http.StatusOK, updated)
}

// DeleteAccount handles DELETE /accounts/{mobileNumber}
// @Summary Delete an account
// @Description Deletes the account and the owning customer record.
// @Tags Accounts
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Success 200 {boolean} boolean "Deletion outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{mobileNumber} [delete]
// @Security BearerAuth
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received delete account request")

	deleted, err := h.service.DeleteAccount(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Account deleted successfully")
	respondJSON(w, http.StatusOK, deleted)
}
