package communication

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"banking-suite/internal/domain/account"
	"banking-suite/internal/event"
	"banking-suite/internal/pkg/apperrors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, name, email, mobileNumber string) (*account.Account, error) {
	args := m.Called(ctx, name, email, mobileNumber)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *MockAccountService) FetchAccount(ctx context.Context, mobileNumber string) (*account.CustomerAccount, error) {
	args := m.Called(ctx, mobileNumber)
	ca, _ := args.Get(0).(*account.CustomerAccount)
	return ca, args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, ca *account.CustomerAccount) (bool, error) {
	args := m.Called(ctx, ca)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, mobileNumber string) (bool, error) {
	args := m.Called(ctx, mobileNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) UpdateCommunicationStatus(ctx context.Context, accountNumber int64) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func deliveryFor(t *testing.T, evt event.CommunicationSentEvent) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return amqp.Delivery{
		Body:       body,
		RoutingKey: event.RoutingKeyCommunicationSent,
	}
}

func TestHandleDeliveryUpdatesCommunicationStatus(t *testing.T) {
	svc := new(MockAccountService)
	handler := NewHandler(svc, testLogger)

	evt := event.CommunicationSentEvent{Timestamp: time.Now().UTC(), AccountNumber: 1354644071}
	svc.On("UpdateCommunicationStatus", mock.Anything, int64(1354644071)).Return(true, nil)

	handler.HandleDelivery(context.Background(), deliveryFor(t, evt))

	svc.AssertExpectations(t)
}

func TestHandleDeliveryUnknownAccountIsDiscarded(t *testing.T) {
	svc := new(MockAccountService)
	handler := NewHandler(svc, testLogger)

	evt := event.CommunicationSentEvent{Timestamp: time.Now().UTC(), AccountNumber: 404}
	svc.On("UpdateCommunicationStatus", mock.Anything, int64(404)).Return(false, apperrors.ErrNotFound)

	handler.HandleDelivery(context.Background(), deliveryFor(t, evt))

	svc.AssertExpectations(t)
	svc.AssertNumberOfCalls(t, "UpdateCommunicationStatus", 1)
}

func TestHandleDeliveryMalformedBodyNeverReachesService(t *testing.T) {
	svc := new(MockAccountService)
	handler := NewHandler(svc, testLogger)

	handler.HandleDelivery(context.Background(), amqp.Delivery{
		Body:       []byte(`{not json`),
		RoutingKey: event.RoutingKeyCommunicationSent,
	})

	svc.AssertNotCalled(t, "UpdateCommunicationStatus", mock.Anything, mock.Anything)
}

func TestHandleDeliveryUnknownRoutingKeyIsDiscarded(t *testing.T) {
	svc := new(MockAccountService)
	handler := NewHandler(svc, testLogger)

	handler.HandleDelivery(context.Background(), amqp.Delivery{
		Body:       []byte(`{}`),
		RoutingKey: "account.created",
	})

	svc.AssertNotCalled(t, "UpdateCommunicationStatus", mock.Anything, mock.Anything)
}
