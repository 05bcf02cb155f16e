package dto

import (
	"fmt"
	"strings"

	"banking-suite/internal/domain/card"

	"github.com/shopspring/decimal"
)

type CreateCardRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

func (r *CreateCardRequest) Validate() error {
	return validateMobileNumber(r.MobileNumber)
}

type UpdateCardRequest struct {
	CardNumber      string          `json:"cardNumber"`
	MobileNumber    string          `json:"mobileNumber"`
	CardType        string          `json:"cardType"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
}

func (r *UpdateCardRequest) Validate() error {
	if len(r.CardNumber) != 12 {
		return fmt.Errorf("cardNumber must be 12 digits")
	}
	if err := validateMobileNumber(r.MobileNumber); err != nil {
		return err
	}
	if strings.TrimSpace(r.CardType) == "" {
		return fmt.Errorf("cardType cannot be empty")
	}
	if r.TotalLimit.IsNegative() || r.AmountUsed.IsNegative() || r.AvailableAmount.IsNegative() {
		return fmt.Errorf("card amounts cannot be negative")
	}
	return nil
}

func (r *UpdateCardRequest) ToDomain() *card.Card {
	return &card.Card{
		CardNumber:      r.CardNumber,
		MobileNumber:    r.MobileNumber,
		CardType:        r.CardType,
		TotalLimit:      r.TotalLimit,
		AmountUsed:      r.AmountUsed,
		AvailableAmount: r.AvailableAmount,
	}
}

type CardResponse struct {
	CardNumber      string          `json:"cardNumber"`
	MobileNumber    string          `json:"mobileNumber"`
	CardType        string          `json:"cardType"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
}

func NewCardResponse(c *card.Card) CardResponse {
	if c == nil {
		return CardResponse{}
	}
	return CardResponse{
		CardNumber:      c.CardNumber,
		MobileNumber:    c.MobileNumber,
		CardType:        c.CardType,
		TotalLimit:      c.TotalLimit,
		AmountUsed:      c.AmountUsed,
		AvailableAmount: c.AvailableAmount,
	}
}
