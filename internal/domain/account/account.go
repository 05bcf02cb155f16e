package account

import (
	"math/rand/v2"
	"time"
)

const (
	AccountTypeSavings   = "Savings"
	DefaultBranchAddress = "123 Main Street, New York"
)

// Customer is the owning identity of an account within the Accounts bounded
// context. MobileNumber is the unique natural key used by every caller-facing
// lookup; CustomerID stays internal.
type Customer struct {
	CustomerID   int64
	Name         string
	Email        string
	MobileNumber string
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    time.Time
	UpdatedBy    string
}

// Account is keyed by its externally visible account number. Exactly one
// account exists per customer.
type Account struct {
	AccountNumber     int64
	CustomerID        int64
	AccountType       string
	BranchAddress     string
	CommunicationSent bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CustomerAccount is the composed view of a customer and their account.
type CustomerAccount struct {
	Customer Customer
	Account  Account
}

// NewAccountNumber returns a random 10-digit account number in
// [1_000_000_000, 1_900_000_000). Collisions are not checked here; the
// storage layer's primary key constraint is the backstop.
func NewAccountNumber() int64 {
	return 1_000_000_000 + rand.Int64N(900_000_000)
}

func NewAccount(customerID int64) *Account {
	return &Account{
		AccountNumber: NewAccountNumber(),
		CustomerID:    customerID,
		AccountType:   AccountTypeSavings,
		BranchAddress: DefaultBranchAddress,
	}
}
