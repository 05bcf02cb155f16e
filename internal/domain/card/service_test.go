package card

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"banking-suite/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c *Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, c *Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*Card, error) {
	args := m.Called(ctx, mobileNumber)
	c, _ := args.Get(0).(*Card)
	return c, args.Error(1)
}

func (m *MockRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*Card, error) {
	args := m.Called(ctx, cardNumber)
	c, _ := args.Get(0).(*Card)
	return c, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, cardID int64) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func TestCardService_CreateCard(t *testing.T) {
	ctx := context.Background()
	const mobile = "4354437687"

	t.Run("issues card with default limits", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		repo.On("FindByMobileNumber", ctx, mobile).Return(nil, apperrors.ErrNotFound).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*card.Card")).Return(nil).Once()

		c, err := svc.CreateCard(ctx, mobile)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, mobile, c.MobileNumber)
		assert.Equal(t, CardTypeCredit, c.CardType)
		assert.True(t, c.TotalLimit.Equal(NewCardLimit))
		assert.True(t, c.AmountUsed.IsZero())
		assert.True(t, c.AvailableAmount.Equal(NewCardLimit))
		assert.Len(t, c.CardNumber, 12)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate mobile number", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		repo.On("FindByMobileNumber", ctx, mobile).Return(&Card{CardID: 1, MobileNumber: mobile}, nil).Once()

		c, err := svc.CreateCard(ctx, mobile)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		assert.Nil(t, c)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCardService_FetchCard(t *testing.T) {
	ctx := context.Background()
	const mobile = "4354437687"

	t.Run("returns stored card", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		stored := &Card{CardID: 1, CardNumber: "100646930341", MobileNumber: mobile}
		repo.On("FindByMobileNumber", ctx, mobile).Return(stored, nil).Once()

		c, err := svc.FetchCard(ctx, mobile)
		require.NoError(t, err)
		assert.Equal(t, stored, c)
	})

	t.Run("unknown mobile number yields resource not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		repo.On("FindByMobileNumber", ctx, mobile).Return(nil, apperrors.ErrNotFound).Once()

		c, err := svc.FetchCard(ctx, mobile)
		assert.Nil(t, c)

		var rnf *apperrors.ResourceNotFoundError
		require.ErrorAs(t, err, &rnf)
		assert.Equal(t, "Card", rnf.Resource)
		assert.Equal(t, mobile, rnf.Value)
	})
}

func TestCardService_UpdateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("updates amounts when they balance", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		existing := &Card{
			CardID:          1,
			CardNumber:      "100646930341",
			MobileNumber:    "4354437687",
			CardType:        CardTypeCredit,
			TotalLimit:      NewCardLimit,
			AmountUsed:      decimal.Zero,
			AvailableAmount: NewCardLimit,
		}
		repo.On("FindByCardNumber", ctx, "100646930341").Return(existing, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(c *Card) bool {
			return c.AmountUsed.Equal(decimal.NewFromInt(10_000)) &&
				c.AvailableAmount.Equal(decimal.NewFromInt(90_000))
		})).Return(nil).Once()

		ok, err := svc.UpdateCard(ctx, &Card{
			CardNumber:      "100646930341",
			MobileNumber:    "4354437687",
			CardType:        CardTypeCredit,
			TotalLimit:      decimal.NewFromInt(100_000),
			AmountUsed:      decimal.NewFromInt(10_000),
			AvailableAmount: decimal.NewFromInt(90_000),
		})
		require.NoError(t, err)
		assert.True(t, ok)
		repo.AssertExpectations(t)
	})

	t.Run("rejects amounts that do not balance", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		ok, err := svc.UpdateCard(ctx, &Card{
			CardNumber:      "100646930341",
			TotalLimit:      decimal.NewFromInt(100_000),
			AmountUsed:      decimal.NewFromInt(10_000),
			AvailableAmount: decimal.NewFromInt(80_000),
		})
		assert.False(t, ok)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "FindByCardNumber", mock.Anything, mock.Anything)
	})

	t.Run("unknown card number yields resource not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		repo.On("FindByCardNumber", ctx, "100646930341").Return(nil, apperrors.ErrNotFound).Once()

		ok, err := svc.UpdateCard(ctx, &Card{
			CardNumber:      "100646930341",
			TotalLimit:      NewCardLimit,
			AmountUsed:      decimal.Zero,
			AvailableAmount: NewCardLimit,
		})
		assert.False(t, ok)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCardService_DeleteCard(t *testing.T) {
	ctx := context.Background()
	const mobile = "4354437687"

	t.Run("deletes by internal id", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		repo.On("FindByMobileNumber", ctx, mobile).Return(&Card{CardID: 9, MobileNumber: mobile}, nil).Once()
		repo.On("Delete", ctx, int64(9)).Return(nil).Once()

		ok, err := svc.DeleteCard(ctx, mobile)
		require.NoError(t, err)
		assert.True(t, ok)
		repo.AssertExpectations(t)
	})

	t.Run("unknown mobile number yields resource not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCardService(repo, testLogger)

		repo.On("FindByMobileNumber", ctx, mobile).Return(nil, apperrors.ErrNotFound).Once()

		ok, err := svc.DeleteCard(ctx, mobile)
		assert.False(t, ok)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
