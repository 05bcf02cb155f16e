package postgres

import (
	"context"
	"testing"
	"time"

	"banking-suite/internal/domain/card"
	"banking-suite/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRepositoryCreate(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	ctx := context.Background()
	repo := NewCardRepository(mockPool, testLogger)
	now := time.Now()

	t.Run("successful insert", func(t *testing.T) {
		c := card.NewCard("4354437687")
		mockPool.ExpectQuery(`INSERT INTO cards`).
			WithArgs(c.CardNumber, c.MobileNumber, c.CardType, c.TotalLimit, c.AmountUsed, c.AvailableAmount).
			WillReturnRows(pgxmock.NewRows([]string{"card_id", "created_at", "updated_at"}).
				AddRow(int64(11), now, now))

		require.NoError(t, repo.Create(ctx, c))
		assert.Equal(t, int64(11), c.CardID)
	})

	t.Run("duplicate mobile number maps to already exists", func(t *testing.T) {
		c := card.NewCard("4354437687")
		mockPool.ExpectQuery(`INSERT INTO cards`).
			WithArgs(c.CardNumber, c.MobileNumber, c.CardType, c.TotalLimit, c.AmountUsed, c.AvailableAmount).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "cards_mobile_number_key"})

		assert.ErrorIs(t, repo.Create(ctx, c), apperrors.ErrAlreadyExists)
	})

	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCardRepositoryFindByCardNumber(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	ctx := context.Background()
	repo := NewCardRepository(mockPool, testLogger)

	seed := card.NewCard("4354437687")
	now := time.Now()
	mockPool.ExpectQuery(`SELECT (.+) FROM cards`).
		WithArgs(seed.CardNumber).
		WillReturnRows(pgxmock.NewRows([]string{"card_id", "card_number", "mobile_number", "card_type", "total_limit", "amount_used", "available_amount", "created_at", "updated_at"}).
			AddRow(int64(11), seed.CardNumber, seed.MobileNumber, seed.CardType, seed.TotalLimit, seed.AmountUsed, seed.AvailableAmount, now, now))

	found, err := repo.FindByCardNumber(ctx, seed.CardNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(11), found.CardID)
	assert.True(t, seed.TotalLimit.Equal(found.TotalLimit))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
