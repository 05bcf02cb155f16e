package dto

import (
	"fmt"
	"strings"

	"banking-suite/internal/domain/account"
)

type CreateAccountRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

func (r *CreateAccountRequest) Validate() error {
	if l := len(strings.TrimSpace(r.Name)); l < 5 || l > 30 {
		return fmt.Errorf("name must be between 5 and 30 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validateMobileNumber(r.MobileNumber)
}

type AccountDTO struct {
	AccountNumber int64  `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	BranchAddress string `json:"branchAddress"`
}

type CustomerAccountRequest struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	MobileNumber string     `json:"mobileNumber"`
	Account      AccountDTO `json:"account"`
}

func (r *CustomerAccountRequest) Validate() error {
	if l := len(strings.TrimSpace(r.Name)); l < 5 || l > 30 {
		return fmt.Errorf("name must be between 5 and 30 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validateMobileNumber(r.MobileNumber); err != nil {
		return err
	}
	if r.Account.AccountNumber <= 0 {
		return fmt.Errorf("accountNumber must be positive")
	}
	if strings.TrimSpace(r.Account.AccountType) == "" {
		return fmt.Errorf("accountType cannot be empty")
	}
	if strings.TrimSpace(r.Account.BranchAddress) == "" {
		return fmt.Errorf("branchAddress cannot be empty")
	}
	return nil
}

func (r *CustomerAccountRequest) ToDomain() *account.CustomerAccount {
	return &account.CustomerAccount{
		Customer: account.Customer{
			Name:         r.Name,
			Email:        r.Email,
			MobileNumber: r.MobileNumber,
		},
		Account: account.Account{
			AccountNumber: r.Account.AccountNumber,
			AccountType:   r.Account.AccountType,
			BranchAddress: r.Account.BranchAddress,
		},
	}
}

type AccountResponse struct {
	AccountNumber int64  `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	BranchAddress string `json:"branchAddress"`
}

func NewAccountResponse(acc *account.Account) AccountResponse {
	if acc == nil {
		return AccountResponse{}
	}
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		BranchAddress: acc.BranchAddress,
	}
}

type CustomerAccountResponse struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	MobileNumber string     `json:"mobileNumber"`
	Account      AccountDTO `json:"account"`
}

func NewCustomerAccountResponse(ca *account.CustomerAccount) CustomerAccountResponse {
	if ca == nil {
		return CustomerAccountResponse{}
	}
	return CustomerAccountResponse{
		Name:         ca.Customer.Name,
		Email:        ca.Customer.Email,
		MobileNumber: ca.Customer.MobileNumber,
		Account: AccountDTO{
			AccountNumber: ca.Account.AccountNumber,
			AccountType:   ca.Account.AccountType,
			BranchAddress: ca.Account.BranchAddress,
		},
	}
}
