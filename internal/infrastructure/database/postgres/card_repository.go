package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"banking-suite/internal/domain/card"
	"banking-suite/internal/infrastructure/monitoring"
	"banking-suite/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type CardRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ card.Repository = (*CardRepository)(nil)

func NewCardRepository(db DBPool, logger *slog.Logger) *CardRepository {
	if db == nil {
		panic("DBPool cannot be nil for CardRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCardRepository, using default stderr handler")
	}
	return &CardRepository{
		db:     db,
		logger: logger.With("component", "CardRepository"),
	}
}

func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	if c == nil {
		return fmt.Errorf("%w: card cannot be nil", apperrors.ErrInvalidArgument)
	}
	start := time.Now()
	r.logger.InfoContext(ctx, "Inserting new card", slog.String("cardNumber", c.CardNumber))

	query := `
        INSERT INTO cards (card_number, mobile_number, card_type, total_limit, amount_used, available_amount, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING card_id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.CardNumber,
		c.MobileNumber,
		c.CardType,
		c.TotalLimit,
		c.AmountUsed,
		c.AvailableAmount,
	).Scan(
		&c.CardID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		monitoring.RecordDBQuery("create_card", "failure", time.Since(start))
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to insert card", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert card: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("create_card", "success", time.Since(start))
	return nil
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	if c == nil {
		return fmt.Errorf("%w: card cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.logger.InfoContext(ctx, "Updating card", slog.Int64("cardID", c.CardID))

	query := `
        UPDATE cards
        SET mobile_number = $1,
            card_type = $2,
            total_limit = $3,
            amount_used = $4,
            available_amount = $5,
            updated_at = NOW()
        WHERE card_id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		c.MobileNumber,
		c.CardType,
		c.TotalLimit,
		c.AmountUsed,
		c.AvailableAmount,
		c.CardID,
	)
	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to update card", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update card: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CardRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*card.Card, error) {
	r.logger.DebugContext(ctx, "Finding card by mobile number")

	query := `
        SELECT card_id, card_number, mobile_number, card_type, total_limit, amount_used, available_amount, created_at, updated_at
        FROM cards
        WHERE mobile_number = $1`

	return r.scanCard(ctx, query, mobileNumber)
}

func (r *CardRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*card.Card, error) {
	r.logger.DebugContext(ctx, "Finding card by card number", slog.String("cardNumber", cardNumber))

	query := `
        SELECT card_id, card_number, mobile_number, card_type, total_limit, amount_used, available_amount, created_at, updated_at
        FROM cards
        WHERE card_number = $1`

	return r.scanCard(ctx, query, cardNumber)
}

func (r *CardRepository) scanCard(ctx context.Context, query string, arg any) (*card.Card, error) {
	var c card.Card
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.CardID,
		&c.CardNumber,
		&c.MobileNumber,
		&c.CardType,
		&c.TotalLimit,
		&c.AmountUsed,
		&c.AvailableAmount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query card", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query card: %w", apperrors.ErrDatabase, err)
	}
	return &c, nil
}

func (r *CardRepository) Delete(ctx context.Context, cardID int64) error {
	r.logger.InfoContext(ctx, "Deleting card", slog.Int64("cardID", cardID))

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cards WHERE card_id = $1`, cardID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete card", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete card: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
