package dto

import (
	"fmt"
	"strings"

	"banking-suite/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type CreateLoanRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

func (r *CreateLoanRequest) Validate() error {
	return validateMobileNumber(r.MobileNumber)
}

type UpdateLoanRequest struct {
	LoanNumber        string          `json:"loanNumber"`
	MobileNumber      string          `json:"mobileNumber"`
	LoanType          string          `json:"loanType"`
	TotalLoan         decimal.Decimal `json:"totalLoan"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

func (r *UpdateLoanRequest) Validate() error {
	if len(r.LoanNumber) != 12 {
		return fmt.Errorf("loanNumber must be 12 digits")
	}
	if err := validateMobileNumber(r.MobileNumber); err != nil {
		return err
	}
	if strings.TrimSpace(r.LoanType) == "" {
		return fmt.Errorf("loanType cannot be empty")
	}
	if r.TotalLoan.IsNegative() || r.AmountPaid.IsNegative() || r.OutstandingAmount.IsNegative() {
		return fmt.Errorf("loan amounts cannot be negative")
	}
	return nil
}

func (r *UpdateLoanRequest) ToDomain() *loan.Loan {
	return &loan.Loan{
		LoanNumber:        r.LoanNumber,
		MobileNumber:      r.MobileNumber,
		LoanType:          r.LoanType,
		TotalLoan:         r.TotalLoan,
		AmountPaid:        r.AmountPaid,
		OutstandingAmount: r.OutstandingAmount,
	}
}

type LoanResponse struct {
	LoanNumber        string          `json:"loanNumber"`
	MobileNumber      string          `json:"mobileNumber"`
	LoanType          string          `json:"loanType"`
	TotalLoan         decimal.Decimal `json:"totalLoan"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	if l == nil {
		return LoanResponse{}
	}
	return LoanResponse{
		LoanNumber:        l.LoanNumber,
		MobileNumber:      l.MobileNumber,
		LoanType:          l.LoanType,
		TotalLoan:         l.TotalLoan,
		AmountPaid:        l.AmountPaid,
		OutstandingAmount: l.OutstandingAmount,
	}
}
