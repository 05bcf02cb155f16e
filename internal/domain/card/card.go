package card

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const CardTypeCredit = "Credit Card"

// NewCardLimit is the total limit granted to a freshly issued card.
var NewCardLimit = decimal.NewFromInt(100_000)

// Card is uniquely keyed by card_number and, in this simplified model, by
// mobile_number as well (one card per customer).
type Card struct {
	CardID          int64
	CardNumber      string
	MobileNumber    string
	CardType        string
	TotalLimit      decimal.Decimal
	AmountUsed      decimal.Decimal
	AvailableAmount decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCardNumber returns a random 12-digit card number. Uniqueness is enforced
// by the cards table constraint, not here.
func NewCardNumber() string {
	n := 100_000_000_000 + rand.Int64N(900_000_000_000)
	return strconv.FormatInt(n, 10)
}

func NewCard(mobileNumber string) *Card {
	return &Card{
		CardNumber:      NewCardNumber(),
		MobileNumber:    mobileNumber,
		CardType:        CardTypeCredit,
		TotalLimit:      NewCardLimit,
		AmountUsed:      decimal.Zero,
		AvailableAmount: NewCardLimit,
	}
}
