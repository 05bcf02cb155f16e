package account

import (
	"banking-suite/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
)

// LoanDetails mirrors the loan representation served by the Loans service.
type LoanDetails struct {
	LoanNumber        string
	MobileNumber      string
	LoanType          string
	TotalLoan         decimal.Decimal
	AmountPaid        decimal.Decimal
	OutstandingAmount decimal.Decimal
}

// CardDetails mirrors the card representation served by the Cards service.
type CardDetails struct {
	CardNumber      string
	MobileNumber    string
	CardType        string
	TotalLimit      decimal.Decimal
	AmountUsed      decimal.Decimal
	AvailableAmount decimal.Decimal
}

// LoanClient fetches loan details from the Loans service. Implementations
// must absorb downstream failures and return (nil, nil) so callers only ever
// see "present" or "absent".
type LoanClient interface {
	FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*LoanDetails, error)
}

// CardClient fetches card details from the Cards service, with the same
// fallback contract as LoanClient.
type CardClient interface {
	FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*CardDetails, error)
}

// CustomerDetails is the aggregated view. Loan and Card are nil when the
// downstream section is unavailable or the customer has none.
type CustomerDetails struct {
	Customer Customer
	Account  Account
	Loan     *LoanDetails
	Card     *CardDetails
}

type CustomerDetailsService interface {
	FetchCustomerDetails(ctx context.Context, mobileNumber, correlationID string) (*CustomerDetails, error)
}

type customerDetailsService struct {
	customerRepo CustomerRepository
	accountRepo  AccountRepository
	loanClient   LoanClient
	cardClient   CardClient
	logger       *slog.Logger
}

var _ CustomerDetailsService = (*customerDetailsService)(nil)

func NewCustomerDetailsService(
	customerRepo CustomerRepository,
	accountRepo AccountRepository,
	loanClient LoanClient,
	cardClient CardClient,
	logger *slog.Logger,
) CustomerDetailsService {
	if customerRepo == nil || accountRepo == nil || loanClient == nil || cardClient == nil {
		panic("customer details service dependencies cannot be nil")
	}
	return &customerDetailsService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		loanClient:   loanClient,
		cardClient:   cardClient,
		logger:       logger.With(slog.String("component", "customerDetailsService")),
	}
}

func (s *customerDetailsService) FetchCustomerDetails(ctx context.Context, mobileNumber, correlationID string) (*CustomerDetails, error) {
	logCtx := s.logger.With(slog.String("correlationID", correlationID))
	logCtx.DebugContext(ctx, "Fetching customer details")

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

	details := &CustomerDetails{Customer: *cust, Account: *acc}

	// Downstream failures are already absorbed by the client fallbacks; a nil
	// result simply leaves the section unset.
	loanDetails, err := s.loanClient.FetchLoanDetails(ctx, correlationID, mobileNumber)
	if err != nil {
		logCtx.WarnContext(ctx, "Loan client returned an error, omitting loan section", slog.Any("error", err))
	} else {
		details.Loan = loanDetails
	}

	cardDetails, err := s.cardClient.FetchCardDetails(ctx, correlationID, mobileNumber)
	if err != nil {
		logCtx.WarnContext(ctx, "Card client returned an error, omitting card section", slog.Any("error", err))
	} else {
		details.Card = cardDetails
	}

	logCtx.InfoContext(ctx, "Customer details assembled",
		slog.Bool("hasLoan", details.Loan != nil),
		slog.Bool("hasCard", details.Card != nil),
	)
	return details, nil
}
