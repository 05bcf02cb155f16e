// Package communication handles the acknowledgment leg of the account
// communication flow on the Accounts side.
package communication

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"banking-suite/internal/domain/account"
	"banking-suite/internal/event"
	"banking-suite/internal/infrastructure/monitoring"
	"banking-suite/internal/pkg/apperrors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler consumes communication.sent acknowledgments and flips the
// communication flag on the matching account. Processing is idempotent, so a
// redelivered acknowledgment is acked without a second write.
type Handler struct {
	service account.AccountService
	logger  *slog.Logger
}

func NewHandler(service account.AccountService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "CommunicationHandler"),
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

	if d.RoutingKey != event.RoutingKeyCommunicationSent {
		logCtx.WarnContext(ctx, "Received message with unknown routing key. Discarding.")
		_ = d.Reject(false)
		processed = true
		return
	}

	var evt event.CommunicationSentEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		logCtx.ErrorContext(ctx, "Failed to unmarshal CommunicationSentEvent", "error", err, "body", string(d.Body))
		monitoring.RecordEventConsumed(d.RoutingKey, "failure")
		_ = d.Nack(false, false)
		processed = true
		return
	}

	logCtx = logCtx.With(slog.Int64("accountNumber", evt.AccountNumber))
	logCtx.InfoContext(ctx, "Processing communication acknowledgment")

	updated, err := h.service.UpdateCommunicationStatus(ctx, evt.AccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The account is gone; redelivery would never succeed.
			logCtx.WarnContext(ctx, "Acknowledgment references an unknown account. Discarding.")
			monitoring.RecordEventConsumed(d.RoutingKey, "failure")
			_ = d.Nack(false, false)
			processed = true
			return
		}
		logCtx.ErrorContext(ctx, "Failed to update communication status", "error", err)
		monitoring.RecordEventConsumed(d.RoutingKey, "failure")
		_ = d.Nack(false, true)
		processed = true
		return
	}

	monitoring.RecordEventConsumed(d.RoutingKey, "success")
	if err := d.Ack(false); err != nil {
		logCtx.ErrorContext(ctx, "Failed to acknowledge message after successful processing", "error", err)
	} else {
		logCtx.InfoContext(ctx, "Communication acknowledgment processed", slog.Bool("updated", updated))
	}
	processed = true
}
