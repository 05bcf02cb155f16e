package dto

import (
	"fmt"
	"regexp"
)

var (
	mobileNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validateMobileNumber(mobileNumber string) error {
	if !mobileNumberPattern.MatchString(mobileNumber) {
		return fmt.Errorf("mobileNumber must be exactly 10 digits")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

type ErrorDetail struct {
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Resource string `json:"resource,omitempty"`
	Value    string `json:"value,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}
