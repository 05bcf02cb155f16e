package message

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"banking-suite/internal/event"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAccountCreated(ctx context.Context, evt event.AccountCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockPublisher) PublishCommunicationSent(ctx context.Context, evt event.CommunicationSentEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, msg event.AccountMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) SendSMS(ctx context.Context, msg event.AccountMessage) (int64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(int64), args.Error(1)
}

func accountCreatedDelivery(t *testing.T) (amqp.Delivery, event.AccountMessage) {
	t.Helper()
	msg := event.AccountMessage{
		AccountNumber: 1354644071,
		Name:          "John Doe",
		Email:         "john@example.com",
		MobileNumber:  "4354437687",
	}
	body, err := json.Marshal(event.AccountCreatedEvent{Timestamp: time.Now().UTC(), Payload: msg})
	require.NoError(t, err)

	return amqp.Delivery{Body: body, RoutingKey: event.RoutingKeyAccountCreated}, msg
}

func TestHandleDeliveryPublishesAcknowledgment(t *testing.T) {
	email := new(MockEmailSender)
	sms := new(MockSMSSender)
	pub := new(MockPublisher)
	handler := NewHandler(email, sms, pub, testLogger)

	d, msg := accountCreatedDelivery(t)
	email.On("SendEmail", mock.Anything, msg).Return(nil)
	sms.On("SendSMS", mock.Anything, msg).Return(msg.AccountNumber, nil)
	pub.On("PublishCommunicationSent", mock.Anything, mock.MatchedBy(func(evt event.CommunicationSentEvent) bool {
		return evt.AccountNumber == msg.AccountNumber
	})).Return(nil)

	handler.HandleDelivery(context.Background(), d)

	email.AssertExpectations(t)
	sms.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestHandleDeliveryEmailFailureSkipsSMSAndAck(t *testing.T) {
	email := new(MockEmailSender)
	sms := new(MockSMSSender)
	pub := new(MockPublisher)
	handler := NewHandler(email, sms, pub, testLogger)

	d, msg := accountCreatedDelivery(t)
	email.On("SendEmail", mock.Anything, msg).Return(errors.New("smtp down"))

	handler.HandleDelivery(context.Background(), d)

	email.AssertExpectations(t)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "PublishCommunicationSent", mock.Anything, mock.Anything)
}

func TestHandleDeliverySMSFailureSkipsAck(t *testing.T) {
	email := new(MockEmailSender)
	sms := new(MockSMSSender)
	pub := new(MockPublisher)
	handler := NewHandler(email, sms, pub, testLogger)

	d, msg := accountCreatedDelivery(t)
	email.On("SendEmail", mock.Anything, msg).Return(nil)
	sms.On("SendSMS", mock.Anything, msg).Return(int64(0), errors.New("gateway down"))

	handler.HandleDelivery(context.Background(), d)

	pub.AssertNotCalled(t, "PublishCommunicationSent", mock.Anything, mock.Anything)
}

func TestHandleDeliveryMalformedBodyIsDiscarded(t *testing.T) {
	email := new(MockEmailSender)
	sms := new(MockSMSSender)
	pub := new(MockPublisher)
	handler := NewHandler(email, sms, pub, testLogger)

	handler.HandleDelivery(context.Background(), amqp.Delivery{
		Body:       []byte(`{not json`),
		RoutingKey: event.RoutingKeyAccountCreated,
	})

	email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestLogSendersReportAccountNumber(t *testing.T) {
	msg := event.AccountMessage{AccountNumber: 1354644071, Email: "john@example.com", MobileNumber: "4354437687"}

	assert.NoError(t, NewLogEmailSender(testLogger).SendEmail(context.Background(), msg))

	n, err := NewLogSMSSender(testLogger).SendSMS(context.Background(), msg)
	assert.NoError(t, err)
	assert.Equal(t, msg.AccountNumber, n)
}
