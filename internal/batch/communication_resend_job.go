// Package batch holds the scheduled jobs of the Accounts service.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"banking-suite/internal/domain/account"
	"banking-suite/internal/event"
)

// CommunicationResendJob re-publishes the account-created payload for every
// account whose communication flag is still false. The message consumer is
// idempotent, so re-sending an already delivered communication is harmless.
type CommunicationResendJob struct {
	accountRepo account.AccountRepository
	publisher   event.EventPublisher
	logger      *slog.Logger
}

func NewCommunicationResendJob(
	accountRepo account.AccountRepository,
	publisher event.EventPublisher,
	logger *slog.Logger,
) *CommunicationResendJob {
	if accountRepo == nil || publisher == nil || logger == nil {
		panic("CommunicationResendJob dependencies cannot be nil")
	}
	return &CommunicationResendJob{
		accountRepo: accountRepo,
		publisher:   publisher,
		logger:      logger.With("job", "CommunicationResend"),
	}
}

func (j *CommunicationResendJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting communication resend job.")

	pending, err := j.accountRepo.ListUnsentCommunications(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list unsent communications, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list unsent communications: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched accounts with unsent communications.", slog.Int("count", len(pending)))

	if len(pending) == 0 {
		j.logger.InfoContext(ctx, "Communication resend job finished.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var published, errorCount int
	for _, ca := range pending {
		logCtx := j.logger.With(slog.Int64("accountNumber", ca.Account.AccountNumber))

		evt := event.AccountCreatedEvent{
			Timestamp: time.Now().UTC(),
			Payload: event.AccountMessage{
				AccountNumber: ca.Account.AccountNumber,
				Name:          ca.Customer.Name,
				Email:         ca.Customer.Email,
				MobileNumber:  ca.Customer.MobileNumber,
			},
		}
		if pubErr := j.publisher.PublishAccountCreated(ctx, evt); pubErr != nil {
			logCtx.ErrorContext(ctx, "Failed to re-publish account created event", slog.Any("error", pubErr))
			errorCount++
			continue
		}
		logCtx.InfoContext(ctx, "Re-published account created event.")
		published++
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("pending", len(pending)),
		slog.Int("published", published),
		slog.Int("errors_encountered", errorCount),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Communication resend job finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}
	summaryLog.InfoContext(ctx, "Communication resend job finished successfully.")
	return nil
}
