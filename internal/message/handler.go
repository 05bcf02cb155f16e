// Package message implements the Message service: it consumes account.created
// events, performs the email and SMS side effects, and publishes the
// communication.sent acknowledgment.
package message

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"banking-suite/internal/event"
	"banking-suite/internal/infrastructure/monitoring"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailSender performs the email side effect of the communication flow.
type EmailSender interface {
	SendEmail(ctx context.Context, msg event.AccountMessage) error
}

// SMSSender performs the SMS side effect and reports the account number the
// communication was sent for.
type SMSSender interface {
	SendSMS(ctx context.Context, msg event.AccountMessage) (int64, error)
}

// LogEmailSender stands in for a real email gateway; it records the send in
// the structured log.
type LogEmailSender struct {
	logger *slog.Logger
}

func NewLogEmailSender(logger *slog.Logger) *LogEmailSender {
	return &LogEmailSender{logger: logger.With("component", "EmailSender")}
}

func (s *LogEmailSender) SendEmail(ctx context.Context, msg event.AccountMessage) error {
	s.logger.InfoContext(ctx, "Sending email",
		slog.String("to", msg.Email),
		slog.String("name", msg.Name),
		slog.Int64("accountNumber", msg.AccountNumber),
	)
	return nil
}

// LogSMSSender stands in for a real SMS gateway.
type LogSMSSender struct {
	logger *slog.Logger
}

func NewLogSMSSender(logger *slog.Logger) *LogSMSSender {
	return &LogSMSSender{logger: logger.With("component", "SMSSender")}
}

func (s *LogSMSSender) SendSMS(ctx context.Context, msg event.AccountMessage) (int64, error) {
	s.logger.InfoContext(ctx, "Sending SMS",
		slog.String("mobileNumber", msg.MobileNumber),
		slog.Int64("accountNumber", msg.AccountNumber),
	)
	return msg.AccountNumber, nil
}

// Handler chains the email and SMS side effects for each account.created
// event and acknowledges the flow back to the Accounts service.
type Handler struct {
	email     EmailSender
	sms       SMSSender
	publisher event.EventPublisher
	logger    *slog.Logger
}

func NewHandler(email EmailSender, sms SMSSender, publisher event.EventPublisher, logger *slog.Logger) *Handler {
	return &Handler{
		email:     email,
		sms:       sms,
		publisher: publisher,
		logger:    logger.With("component", "MessageHandler"),
	}
}

func (h *Handler) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	logCtx := h.logger.With(slog.Uint64("deliveryTag", d.DeliveryTag), slog.String("routingKey", d.RoutingKey))
	processed := false

	defer func() {
		if !processed {
			logCtx.WarnContext(ctx, "Message processing ended without explicit Ack/Nack")
			_ = d.Nack(false, false)
		}
	}()

	if d.RoutingKey != event.RoutingKeyAccountCreated {
		logCtx.WarnContext(ctx, "Received message with unknown routing key. Discarding.")
		_ = d.Reject(false)
		processed = true
		return
	}

	var evt event.AccountCreatedEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		logCtx.ErrorContext(ctx, "Failed to unmarshal AccountCreatedEvent", "error", err, "body", string(d.Body))
		monitoring.RecordEventConsumed(d.RoutingKey, "failure")
		_ = d.Nack(false, false)
		processed = true
		return
	}

	logCtx = logCtx.With(slog.Int64("accountNumber", evt.Payload.AccountNumber))
	logCtx.InfoContext(ctx, "Processing account communication request")

	if err := h.email.SendEmail(ctx, evt.Payload); err != nil {
		logCtx.ErrorContext(ctx, "Failed to send email", "error", err)
		monitoring.RecordEventConsumed(d.RoutingKey, "failure")
		_ = d.Nack(false, true)
		processed = true
		return
	}

	accountNumber, err := h.sms.SendSMS(ctx, evt.Payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to send SMS", "error", err)
		monitoring.RecordEventConsumed(d.RoutingKey, "failure")
		_ = d.Nack(false, true)
		processed = true
		return
	}

	ack := event.CommunicationSentEvent{
		Timestamp:     time.Now().UTC(),
		AccountNumber: accountNumber,
	}
	if err := h.publisher.PublishCommunicationSent(ctx, ack); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish communication acknowledgment", "error", err)
		monitoring.RecordEventConsumed(d.RoutingKey, "failure")
		_ = d.Nack(false, true)
		processed = true
		return
	}

	monitoring.RecordEventConsumed(d.RoutingKey, "success")
	if err := d.Ack(false); err != nil {
		logCtx.ErrorContext(ctx, "Failed to acknowledge message after successful processing", "error", err)
	} else {
		logCtx.InfoContext(ctx, "Communication side effects completed and acknowledged")
	}
	processed = true
}
