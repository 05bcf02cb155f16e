package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"banking-suite/internal/api/handler/dto"
	"banking-suite/internal/domain/card"
	"banking-suite/internal/pkg/apperrors"
)

type CardHandler struct {
	service card.CardService
	logger  *slog.Logger
}

func NewCardHandler(s card.CardService, l *slog.Logger) *CardHandler {
	if s == nil {
		panic("card service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CardHandler{
		service: s,
		logger:  l.With("component", "CardHandler"),
	}
}

// CreateCard handles POST /cards
// @Summary Issue a new card
// @Description Issues a Credit Card with the default limit for the given mobile number.
// @Tags Cards
// @Accept json
// @Produce json
// @Param request body dto.CreateCardRequest true "Card creation request"
// @Success 201 {object} dto.CardResponse "Card successfully issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Card already exists for the given mobile number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cards [post]
// @Security BearerAuth
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create card request")

	var req dto.CreateCardRequest
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

	createdCard, err := h.service.CreateCard(r.Context(), req.MobileNumber)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to create card", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCardResponse(createdCard)
	h.logger.InfoContext(r.Context(), "Card issued successfully", slog.String("cardNumber", resp.CardNumber))
	respondJSON(w, http.StatusCreated, resp)
}

// GetCard handles GET /cards/{mobileNumber}
// @Summary Retrieve card details
// @Description Retrieves the card held by the given mobile number.
// @Tags Cards
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Success 200 {object} dto.CardResponse "Card details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Card not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cards/{mobileNumber} [get]
// @Security BearerAuth
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get card request")

	c, err := h.service.FetchCard(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to fetch card", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCardResponse(c)
	h.logger.InfoContext(r.Context(), "Card retrieved successfully", slog.String("cardNumber", resp.CardNumber))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateCard handles PUT /cards
// @Summary Update card details
// @Description Updates the card identified by the card number in the payload. The available amount must equal the limit minus the amount used.
// @Tags Cards
// @Accept json
// @Produce json
// @Param request body dto.UpdateCardRequest true "Card update request"
// @Success 200 {boolean} boolean "Update outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or inconsistent amounts"
// @Failure 404 {object} dto.ErrorResponse "Card not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cards [put]
// @Security BearerAuth
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received update card request")

	var req dto.UpdateCardRequest
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

	updated, err := h.service.UpdateCard(r.Context(), req.ToDomain())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update card", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Card updated successfully", slog.String("cardNumber", req.CardNumber))
	respondJSON(w, http.StatusOK, updated)
}

// DeleteCard handles DELETE /cards/{mobileNumber}
// @Summary Delete a card
// @Description Deletes the card held by the given mobile number.
// @Tags Cards
// @Produce json
// @Param mobileNumber path string true "Customer mobile number (10 digits)"
// @Success 200 {boolean} boolean "Deletion outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number"
// @Failure 404 {object} dto.ErrorResponse "Card not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cards/{mobileNumber} [delete]
// @Security BearerAuth
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	mobileNumber, err := getMobileNumberFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get mobile number from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received delete card request")

	deleted, err := h.service.DeleteCard(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete card", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Card deleted successfully")
	respondJSON(w, http.StatusOK, deleted)
}
