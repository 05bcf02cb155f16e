package card

import "context"

type Repository interface {
	Create(ctx context.Context, card *Card) error

	Update(ctx context.Context, card *Card) error

	FindByMobileNumber(ctx context.Context, mobileNumber string) (*Card, error)

	FindByCardNumber(ctx context.Context, cardNumber string) (*Card, error)

	Delete(ctx context.Context, cardID int64) error
}
