package account

import (
	"context"
	"testing"

	"banking-suite/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLoanClient struct {
	mock.Mock
}

func (m *MockLoanClient) FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*LoanDetails, error) {
	args := m.Called(ctx, correlationID, mobileNumber)
	details, _ := args.Get(0).(*LoanDetails)
	return details, args.Error(1)
}

type MockCardClient struct {
	mock.Mock
}

func (m *MockCardClient) FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*CardDetails, error) {
	args := m.Called(ctx, correlationID, mobileNumber)
	details, _ := args.Get(0).(*CardDetails)
	return details, args.Error(1)
}

func newTestDetailsService(t *testing.T) (CustomerDetailsService, *MockCustomerRepository, *MockAccountRepository, *MockLoanClient, *MockCardClient) {
	t.Helper()
	customerRepo := new(MockCustomerRepository)
	accountRepo := new(MockAccountRepository)
	loanClient := new(MockLoanClient)
	cardClient := new(MockCardClient)
	svc := NewCustomerDetailsService(customerRepo, accountRepo, loanClient, cardClient, testLogger)
	return svc, customerRepo, accountRepo, loanClient, cardClient
}

func TestCustomerDetailsService_FetchCustomerDetails(t *testing.T) {
	ctx := context.Background()
	const (
		mobile        = "4354437687"
		correlationID = "4e1c9fd2-0b8f-4a1f-9c77-2f5af13d6a10"
	)

	cust := &Customer{CustomerID: 5, Name: "Madan Reddy", Email: "madan@example.com", MobileNumber: mobile}
	acc := &Account{AccountNumber: 1354644071, CustomerID: 5, AccountType: AccountTypeSavings}

	t.Run("aggregates loan and card sections", func(t *testing.T) {
		svc, customerRepo, accountRepo, loanClient, cardClient := newTestDetailsService(t)

		loanDetails := &LoanDetails{
			LoanNumber:        "548732457654",
			MobileNumber:      mobile,
			LoanType:          "Home Loan",
			TotalLoan:         decimal.NewFromInt(100_000),
			AmountPaid:        decimal.NewFromInt(1_000),
			OutstandingAmount: decimal.NewFromInt(99_000),
		}
		cardDetails := &CardDetails{
			CardNumber:      "100646930341",
			MobileNumber:    mobile,
			CardType:        "Credit Card",
			TotalLimit:      decimal.NewFromInt(100_000),
			AmountUsed:      decimal.Zero,
			AvailableAmount: decimal.NewFromInt(100_000),
		}

		customerRepo.On("FindByMobileNumber", ctx, mobile).Return(cust, nil).Once()
		accountRepo.On("FindByCustomerID", ctx, int64(5)).Return(acc, nil).Once()
		loanClient.On("FetchLoanDetails", ctx, correlationID, mobile).Return(loanDetails, nil).Once()
		cardClient.On("FetchCardDetails", ctx, correlationID, mobile).Return(cardDetails, nil).Once()

		details, err := svc.FetchCustomerDetails(ctx, mobile, correlationID)
		require.NoError(t, err)
		assert.Equal(t, *cust, details.Customer)
		assert.Equal(t, *acc, details.Account)
		require.NotNil(t, details.Loan)
		assert.Equal(t, "548732457654", details.Loan.LoanNumber)
		require.NotNil(t, details.Card)
		assert.Equal(t, "100646930341", details.Card.CardNumber)

		loanClient.AssertExpectations(t)
		cardClient.AssertExpectations(t)
	})

	t.Run("missing loan leaves section unset", func(t *testing.T) {
		svc, customerRepo, accountRepo, loanClient, cardClient := newTestDetailsService(t)

		cardDetails := &CardDetails{CardNumber: "100646930341", MobileNumber: mobile, CardType: "Credit Card"}

		customerRepo.On("FindByMobileNumber", ctx, mobile).Return(cust, nil).Once()
		accountRepo.On("FindByCustomerID", ctx, int64(5)).Return(acc, nil).Once()
		loanClient.On("FetchLoanDetails", ctx, correlationID, mobile).Return(nil, nil).Once()
		cardClient.On("FetchCardDetails", ctx, correlationID, mobile).Return(cardDetails, nil).Once()

		details, err := svc.FetchCustomerDetails(ctx, mobile, correlationID)
		require.NoError(t, err)
		assert.Nil(t, details.Loan)
		require.NotNil(t, details.Card)
	})

	t.Run("both downstreams unavailable still yields the base view", func(t *testing.T) {
		svc, customerRepo, accountRepo, loanClient, cardClient := newTestDetailsService(t)

		customerRepo.On("FindByMobileNumber", ctx, mobile).Return(cust, nil).Once()
		accountRepo.On("FindByCustomerID", ctx, int64(5)).Return(acc, nil).Once()
		loanClient.On("FetchLoanDetails", ctx, correlationID, mobile).Return(nil, nil).Once()
		cardClient.On("FetchCardDetails", ctx, correlationID, mobile).Return(nil, nil).Once()

		details, err := svc.FetchCustomerDetails(ctx, mobile, correlationID)
		require.NoError(t, err)
		assert.Equal(t, *cust, details.Customer)
		assert.Nil(t, details.Loan)
		assert.Nil(t, details.Card)
	})

	t.Run("unknown customer yields resource not found", func(t *testing.T) {
		svc, customerRepo, _, loanClient, cardClient := newTestDetailsService(t)

		customerRepo.On("FindByMobileNumber", ctx, mobile).Return(nil, apperrors.ErrNotFound).Once()

		details, err := svc.FetchCustomerDetails(ctx, mobile, correlationID)
		assert.Nil(t, details)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		loanClient.AssertNotCalled(t, "FetchLoanDetails", mock.Anything, mock.Anything, mock.Anything)
		cardClient.AssertNotCalled(t, "FetchCardDetails", mock.Anything, mock.Anything, mock.Anything)
	})
}
