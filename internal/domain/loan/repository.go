package loan

import "context"

type Repository interface {
	Create(ctx context.Context, loan *Loan) error

	Update(ctx context.Context, loan *Loan) error

	FindByMobileNumber(ctx context.Context, mobileNumber string) (*Loan, error)

	FindByLoanNumber(ctx context.Context, loanNumber string) (*Loan, error)

	Delete(ctx context.Context, loanID int64) error
}
