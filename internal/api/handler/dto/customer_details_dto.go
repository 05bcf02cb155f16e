package dto

import (
	"banking-suite/internal/domain/account"

	"github.com/shopspring/decimal"
)

type LoanDetailsDTO struct {
	LoanNumber        string          `json:"loanNumber"`
	MobileNumber      string          `json:"mobileNumber"`
	LoanType          string          `json:"loanType"`
	TotalLoan         decimal.Decimal `json:"totalLoan"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

type CardDetailsDTO struct {
	CardNumber      string          `json:"cardNumber"`
	MobileNumber    string          `json:"mobileNumber"`
	CardType        string          `json:"cardType"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
}

// CustomerDetailsResponse aggregates the customer's account with the loan and
// card sections fetched from the sibling services. Absent sections are
// omitted rather than rendered as nulls.
type CustomerDetailsResponse struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	MobileNumber string          `json:"mobileNumber"`
	Account      AccountDTO      `json:"account"`
	Loan         *LoanDetailsDTO `json:"loan,omitempty"`
	Card         *CardDetailsDTO `json:"card,omitempty"`
}

func NewCustomerDetailsResponse(details *account.CustomerDetails) CustomerDetailsResponse {
	if details == nil {
		return CustomerDetailsResponse{}
	}

	resp := CustomerDetailsResponse{
		Name:         details.Customer.Name,
		Email:        details.Customer.Email,
		MobileNumber: details.Customer.MobileNumber,
		Account: AccountDTO{
			AccountNumber: details.Account.AccountNumber,
			AccountType:   details.Account.AccountType,
			BranchAddress: details.Account.BranchAddress,
		},
	}

	if details.Loan != nil {
		resp.Loan = &LoanDetailsDTO{
			LoanNumber:        details.Loan.LoanNumber,
			MobileNumber:      details.Loan.MobileNumber,
			LoanType:          details.Loan.LoanType,
			TotalLoan:         details.Loan.TotalLoan,
			AmountPaid:        details.Loan.AmountPaid,
			OutstandingAmount: details.Loan.OutstandingAmount,
		}
	}
	if details.Card != nil {
		resp.Card = &CardDetailsDTO{
			CardNumber:      details.Card.CardNumber,
			MobileNumber:    details.Card.MobileNumber,
			CardType:        details.Card.CardType,
			TotalLimit:      details.Card.TotalLimit,
			AmountUsed:      details.Card.AmountUsed,
			AvailableAmount: details.Card.AvailableAmount,
		}
	}

	return resp
}
