package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"banking-suite/internal/domain/account"
	"banking-suite/internal/infrastructure/monitoring"
	"banking-suite/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ account.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db DBPool, logger *slog.Logger) *AccountRepository {
	if db == nil {
		panic("DBPool cannot be nil for AccountRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountRepository, using default stderr handler")
	}
	return &AccountRepository{
		db:     db,
		logger: logger.With("component", "AccountRepository"),
	}
}

func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	if acc == nil {
		return fmt.Errorf("%w: account cannot be nil", apperrors.ErrInvalidArgument)
	}
	start := time.Now()
	r.logger.InfoContext(ctx, "Updating account", slog.Int64("accountNumber", acc.AccountNumber))

	query := `
        UPDATE accounts
        SET account_type = $1,
            branch_address = $2,
            communication_sw = $3,
            updated_at = NOW()
        WHERE account_number = $4`

	cmdTag, err := r.db.Exec(ctx, query,
		acc.AccountType,
		acc.BranchAddress,
		acc.CommunicationSent,
		acc.AccountNumber,
	)
	if err != nil {
		monitoring.RecordDBQuery("update_account", "failure", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to update account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update account: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	monitoring.RecordDBQuery("update_account", "success", time.Since(start))
	return nil
}

func (r *AccountRepository) FindByAccountNumber(ctx context.Context, accountNumber int64) (*account.Account, error) {
	r.logger.DebugContext(ctx, "Finding account by account number", slog.Int64("accountNumber", accountNumber))

	query := `
        SELECT account_number, customer_id, account_type, branch_address, communication_sw, created_at, updated_at
        FROM accounts
        WHERE account_number = $1`

	return r.scanAccount(ctx, query, accountNumber)
}

func (r *AccountRepository) FindByCustomerID(ctx context.Context, customerID int64) (*account.Account, error) {
	r.logger.DebugContext(ctx, "Finding account by customer ID", slog.Int64("customerID", customerID))

	query := `
        SELECT account_number, customer_id, account_type, branch_address, communication_sw, created_at, updated_at
        FROM accounts
        WHERE customer_id = $1`

	return r.scanAccount(ctx, query, customerID)
}

func (r *AccountRepository) scanAccount(ctx context.Context, query string, arg any) (*account.Account, error) {
	var acc account.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&acc.AccountNumber,
		&acc.CustomerID,
		&acc.AccountType,
		&acc.BranchAddress,
		&acc.CommunicationSent,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query account", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query account: %w", apperrors.ErrDatabase, err)
	}
	return &acc, nil
}

func (r *AccountRepository) ListUnsentCommunications(ctx context.Context) ([]account.CustomerAccount, error) {
	r.logger.DebugContext(ctx, "Listing accounts with unsent communications")

	query := `
        SELECT a.account_number, a.customer_id, a.account_type, a.branch_address, a.communication_sw, a.created_at, a.updated_at,
               c.customer_id, c.name, c.email, c.mobile_number, c.created_at, c.created_by, c.updated_at, c.updated_by
        FROM accounts a
        JOIN customers c ON c.customer_id = a.customer_id
        WHERE a.communication_sw = FALSE
        ORDER BY a.account_number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query unsent communications", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query unsent communications: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	var results []account.CustomerAccount
	for rows.Next() {
		var ca account.CustomerAccount
		err := rows.Scan(
			&ca.Account.AccountNumber,
			&ca.Account.CustomerID,
			&ca.Account.AccountType,
			&ca.Account.BranchAddress,
			&ca.Account.CommunicationSent,
			&ca.Account.CreatedAt,
			&ca.Account.UpdatedAt,
			&ca.Customer.CustomerID,
			&ca.Customer.Name,
			&ca.Customer.Email,
			&ca.Customer.MobileNumber,
			&ca.Customer.CreatedAt,
			&ca.Customer.CreatedBy,
			&ca.Customer.UpdatedAt,
			&ca.Customer.UpdatedBy,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan unsent communication row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan unsent communication row: %w", apperrors.ErrDatabase, err)
		}
		results = append(results, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed iterating unsent communications: %w", apperrors.ErrDatabase, err)
	}

	return results, nil
}
