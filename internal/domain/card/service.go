package card

import (
	"banking-suite/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type CardService interface {
	CreateCard(ctx context.Context, mobileNumber string) (*Card, error)

	FetchCard(ctx context.Context, mobileNumber string) (*Card, error)

	UpdateCard(ctx context.Context, card *Card) (bool, error)

	DeleteCard(ctx context.Context, mobileNumber string) (bool, error)
}

type cardService struct {
	repo   Repository
	logger *slog.Logger
}

var _ CardService = (*cardService)(nil)

func NewCardService(repo Repository, logger *slog.Logger) CardService {
	if repo == nil {
		panic("card repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCardService, using default stderr handler")
	}
	return &cardService{
		repo:   repo,
		logger: logger.With(slog.String("component", "cardService")),
	}
}

func (s *cardService) CreateCard(ctx context.Context, mobileNumber string) (*Card, error) {
	s.logger.InfoContext(ctx, "Attempting to issue new card")

	mobileNumber = strings.TrimSpace(mobileNumber)
	if mobileNumber == "" {
		return nil, fmt.Errorf("%w: mobile number cannot be empty", apperrors.ErrInvalidArgument)
	}

	existing, err := s.repo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Failed to check for existing card", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check for existing card: %w", err)
	}
	if existing != nil {
		s.logger.WarnContext(ctx, "Card already registered with given mobile number")
		return nil, fmt.Errorf("%w: card already registered with given mobile number %s", apperrors.ErrAlreadyExists, mobileNumber)
	}

	newCard := NewCard(mobileNumber)
	if err := s.repo.Create(ctx, newCard); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: card already registered with given mobile number %s", apperrors.ErrAlreadyExists, mobileNumber)
		}
		s.logger.ErrorContext(ctx, "Failed to persist card", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to create card: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Card issued successfully", slog.String("cardNumber", newCard.CardNumber))
	return newCard, nil
}

func (s *cardService) FetchCard(ctx context.Context, mobileNumber string) (*Card, error) {
	s.logger.DebugContext(ctx, "Fetching card")

	found, err := s.repo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Card", "mobileNumber", mobileNumber)
		}
		return nil, fmt.Errorf("%w: failed to fetch card: %v", apperrors.ErrInternalServer, err)
	}
	return found, nil
}

func (s *cardService) UpdateCard(ctx context.Context, c *Card) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("%w: card cannot be nil", apperrors.ErrInvalidArgument)
	}
	s.logger.DebugContext(ctx, "Updating card", slog.String("cardNumber", c.CardNumber))

	if !c.AvailableAmount.Equal(c.TotalLimit.Sub(c.AmountUsed)) {
		s.logger.WarnContext(ctx, "Rejected inconsistent card amounts",
			slog.String("totalLimit", c.TotalLimit.String()),
			slog.String("amountUsed", c.AmountUsed.String()),
			slog.String("availableAmount", c.AvailableAmount.String()),
		)
		return false, apperrors.NewValidationError("availableAmount", "available amount must equal total limit minus amount used")
	}

	existing, err := s.repo.FindByCardNumber(ctx, c.CardNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Card", "cardNumber", c.CardNumber)
		}
		return false, fmt.Errorf("%w: failed to fetch card: %v", apperrors.ErrInternalServer, err)
	}

	existing.MobileNumber = c.MobileNumber
	existing.CardType = c.CardType
	existing.TotalLimit = c.TotalLimit
	existing.AmountUsed = c.AmountUsed
	existing.AvailableAmount = c.AvailableAmount
	if err := s.repo.Update(ctx, existing); err != nil {
		return false, fmt.Errorf("%w: failed to update card: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Card updated successfully", slog.String("cardNumber", c.CardNumber))
	return true, nil
}

func (s *cardService) DeleteCard(ctx context.Context, mobileNumber string) (bool, error) {
	s.logger.InfoContext(ctx, "Deleting card")

	found, err := s.repo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Card", "mobileNumber", mobileNumber)
		}
		return false, fmt.Errorf("%w: failed to fetch card: %v", apperrors.ErrInternalServer, err)
	}

	if err := s.repo.Delete(ctx, found.CardID); err != nil {
		return false, fmt.Errorf("%w: failed to delete card: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Card deleted successfully", slog.Int64("cardID", found.CardID))
	return true, nil
}
