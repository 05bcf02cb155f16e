package account

import (
	"banking-suite/internal/event"
	"banking-suite/internal/infrastructure/monitoring"
	"banking-suite/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type AccountService interface {
	// CreateAccount registers a customer and opens their account. After the
	// records are durably persisted it publishes an account-created event;
	// publication failure is logged but never rolls back the creation.
	CreateAccount(ctx context.Context, name, email, mobileNumber string) (*Account, error)

	FetchAccount(ctx context.Context, mobileNumber string) (*CustomerAccount, error)

	UpdateAccount(ctx context.Context, details *CustomerAccount) (bool, error)

	DeleteAccount(ctx context.Context, mobileNumber string) (bool, error)

	// UpdateCommunicationStatus marks the account's communication flag true.
	// Deliveries are at-least-once, so repeated calls for the same account
	// must succeed.
	UpdateCommunicationStatus(ctx context.Context, accountNumber int64) (bool, error)
}

type accountService struct {
	customerRepo CustomerRepository
	accountRepo  AccountRepository
	pub          event.EventPublisher
	logger       *slog.Logger
}

var _ AccountService = (*accountService)(nil)

func NewAccountService(customerRepo CustomerRepository, accountRepo AccountRepository, pub event.EventPublisher, logger *slog.Logger) AccountService {
	if customerRepo == nil || accountRepo == nil {
		panic("account service repositories cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountService, using default stderr handler")
	}
	return &accountService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		pub:          pub,
		logger:       logger.With(slog.String("component", "accountService")),
	}
}

func (s *accountService) CreateAccount(ctx context.Context, name, email, mobileNumber string) (*Account, error) {
	s.logger.InfoContext(ctx, "Attempting to create new account")

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	mobileNumber = strings.TrimSpace(mobileNumber)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name cannot be empty", apperrors.ErrInvalidArgument)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: customer email cannot be empty", apperrors.ErrInvalidArgument)
	}
	if mobileNumber == "" {
		return nil, fmt.Errorf("%w: mobile number cannot be empty", apperrors.ErrInvalidArgument)
	}

	// Fast path only. The unique constraint on mobile_number is the source of
	// truth for concurrent creates; the repository surfaces a violation as
	// ErrAlreadyExists.
	existing, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Failed to check for existing customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check for existing customer: %w", err)
	}
	if existing != nil {
		s.logger.WarnContext(ctx, "Customer already registered with given mobile number")
		return nil, fmt.Errorf("%w: customer already registered with given mobile number %s", apperrors.ErrAlreadyExists, mobileNumber)
	}

	cust := &Customer{
		Name:         name,
		Email:        email,
		MobileNumber: mobileNumber,
	}
	acc := NewAccount(0)

	if err := s.customerRepo.CreateWithAccount(ctx, cust, acc); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Concurrent create lost the race on unique constraint", slog.Any("error", err))
			return nil, fmt.Errorf("%w: customer already registered with given mobile number %s", apperrors.ErrAlreadyExists, mobileNumber)
		}
		s.logger.ErrorContext(ctx, "Failed to persist customer and account", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to create account: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordAccountCreated()
	s.logger.InfoContext(ctx, "Account created successfully", slog.Int64("accountNumber", acc.AccountNumber))

	s.sendCommunication(ctx, acc, cust)

	return acc, nil
}

// sendCommunication publishes best effort: the account is already committed,
// so a broker failure is logged and left to the resend job.
func (s *accountService) sendCommunication(ctx context.Context, acc *Account, cust *Customer) {
	if s.pub == nil {
		s.logger.WarnContext(ctx, "No event publisher configured, skipping communication request")
		return
	}
	evt := event.AccountCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.AccountMessage{
			AccountNumber: acc.AccountNumber,
			Name:          cust.Name,
			Email:         cust.Email,
			MobileNumber:  cust.MobileNumber,
		},
	}
	s.logger.InfoContext(ctx, "Sending communication request", slog.Int64("accountNumber", acc.AccountNumber))
	if err := s.pub.PublishAccountCreated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish account created event", slog.Any("error", err))
		return
	}
	s.logger.InfoContext(ctx, "Communication request successfully triggered")
}

func (s *accountService) FetchAccount(ctx context.Context, mobileNumber string) (*CustomerAccount, error) {
	s.logger.DebugContext(ctx, "Fetching account")

	cust, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Customer", "mobileNumber", mobileNumber)
		}
		return nil, fmt.Errorf("%w: failed to fetch customer: %v", apperrors.ErrInternalServer, err)
	}

	acc, err := s.accountRepo.FindByCustomerID(ctx, cust.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Account", "customerId", strconv.FormatInt(cust.CustomerID, 10))
		}
		return nil, fmt.Errorf("%w: failed to fetch account: %v", apperrors.ErrInternalServer, err)
	}

	return &CustomerAccount{Customer: *cust, Account: *acc}, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, details *CustomerAccount) (bool, error) {
	if details == nil {
		return false, fmt.Errorf("%w: account details cannot be nil", apperrors.ErrInvalidArgument)
	}
	s.logger.DebugContext(ctx, "Updating account", slog.Int64("accountNumber", details.Account.AccountNumber))

	acc, err := s.accountRepo.FindByAccountNumber(ctx, details.Account.AccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Account", "accountNumber", strconv.FormatInt(details.Account.AccountNumber, 10))
		}
		return false, fmt.Errorf("%w: failed to fetch account: %v", apperrors.ErrInternalServer, err)
	}

	acc.AccountType = details.Account.AccountType
	acc.BranchAddress = details.Account.BranchAddress
	if err := s.accountRepo.Update(ctx, acc); err != nil {
		return false, fmt.Errorf("%w: failed to update account: %v", apperrors.ErrInternalServer, err)
	}

	cust, err := s.customerRepo.FindByID(ctx, acc.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Customer", "customerId", strconv.FormatInt(acc.CustomerID, 10))
		}
		return false, fmt.Errorf("%w: failed to fetch customer: %v", apperrors.ErrInternalServer, err)
	}

	cust.Name = details.Customer.Name
	cust.Email = details.Customer.Email
	cust.MobileNumber = details.Customer.MobileNumber
	if err := s.customerRepo.Update(ctx, cust); err != nil {
		return false, fmt.Errorf("%w: failed to update customer: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Account updated successfully", slog.Int64("accountNumber", acc.AccountNumber))
	return true, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, mobileNumber string) (bool, error) {
	s.logger.InfoContext(ctx, "Deleting account")

	cust, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Customer", "mobileNumber", mobileNumber)
		}
		return false, fmt.Errorf("%w: failed to fetch customer: %v", apperrors.ErrInternalServer, err)
	}

	if err := s.customerRepo.DeleteWithAccount(ctx, cust.CustomerID); err != nil {
		return false, fmt.Errorf("%w: failed to delete account: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Account deleted successfully", slog.Int64("customerID", cust.CustomerID))
	return true, nil
}

func (s *accountService) UpdateCommunicationStatus(ctx context.Context, accountNumber int64) (bool, error) {
	s.logger.InfoContext(ctx, "Updating communication status", slog.Int64("accountNumber", accountNumber))

	acc, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Account", "accountNumber", strconv.FormatInt(accountNumber, 10))
		}
		return false, fmt.Errorf("%w: failed to fetch account: %v", apperrors.ErrInternalServer, err)
	}

	if acc.CommunicationSent {
		// Duplicate delivery; the flag is already where it should be.
		s.logger.InfoContext(ctx, "Communication status already set", slog.Int64("accountNumber", accountNumber))
		return true, nil
	}

	acc.CommunicationSent = true
	if err := s.accountRepo.Update(ctx, acc); err != nil {
		return false, fmt.Errorf("%w: failed to update communication status: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Communication status updated", slog.Int64("accountNumber", accountNumber))
	return true, nil
}
