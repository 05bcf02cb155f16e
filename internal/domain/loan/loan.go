package loan

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const LoanTypeHome = "Home Loan"

// NewLoanLimit is the total amount granted to a freshly created loan.
var NewLoanLimit = decimal.NewFromInt(100_000)

// Loan models at most one active loan per mobile number; both loan_number and
// mobile_number are unique natural keys.
type Loan struct {
	LoanID            int64
	LoanNumber        string
	MobileNumber      string
	LoanType          string
	TotalLoan         decimal.Decimal
	AmountPaid        decimal.Decimal
	OutstandingAmount decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewLoanNumber returns a random 12-digit loan number in
// [100_000_000_000, 1_000_000_000_000). Collisions are left to the unique
// constraint on the loans table.
func NewLoanNumber() string {
	n := 100_000_000_000 + rand.Int64N(900_000_000_000)
	return strconv.FormatInt(n, 10)
}

func NewLoan(mobileNumber string) *Loan {
	return &Loan{
		LoanNumber:        NewLoanNumber(),
		MobileNumber:      mobileNumber,
		LoanType:          LoanTypeHome,
		TotalLoan:         NewLoanLimit,
		AmountPaid:        decimal.Zero,
		OutstandingAmount: NewLoanLimit,
	}
}
