package account

import "context"

type CustomerRepository interface {
	// CreateWithAccount persists the customer and their account in a single
	// transaction, filling in generated identifiers and audit timestamps.
	CreateWithAccount(ctx context.Context, cust *Customer, acc *Account) error

	Update(ctx context.Context, cust *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByMobileNumber(ctx context.Context, mobileNumber string) (*Customer, error)

	// DeleteWithAccount removes the account owned by the customer and then
	// the customer itself, in a single transaction.
	DeleteWithAccount(ctx context.Context, customerID int64) error
}

type AccountRepository interface {
	Update(ctx context.Context, acc *Account) error

	FindByAccountNumber(ctx context.Context, accountNumber int64) (*Account, error)

	FindByCustomerID(ctx context.Context, customerID int64) (*Account, error)

	// ListUnsentCommunications returns every account whose communication flag
	// is still false, joined with its owning customer.
	ListUnsentCommunications(ctx context.Context) ([]CustomerAccount, error)
}
