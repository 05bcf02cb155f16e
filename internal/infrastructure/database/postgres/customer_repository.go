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

const auditActor = "ACCOUNTS_MS"

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ account.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) CreateWithAccount(ctx context.Context, cust *account.Customer, acc *account.Account) (err error) {
	if cust == nil || acc == nil {
		return fmt.Errorf("%w: customer and account cannot be nil", apperrors.ErrInvalidArgument)
	}
	start := time.Now()
	r.logger.InfoContext(ctx, "Inserting new customer with account", slog.String("name", cust.Name))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
			}
		}
	}()

	customerQuery := `
        INSERT INTO customers (name, email, mobile_number, created_at, created_by, updated_at, updated_by)
        VALUES ($1, $2, $3, NOW(), $4, NOW(), $4)
        RETURNING customer_id, created_at, updated_at`

	err = tx.QueryRow(ctx, customerQuery,
		cust.Name,
		cust.Email,
		cust.MobileNumber,
		auditActor,
	).Scan(
		&cust.CustomerID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		monitoring.RecordDBQuery("create_customer", "failure", time.Since(start))
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}
	cust.CreatedBy = auditActor
	cust.UpdatedBy = auditActor

	acc.CustomerID = cust.CustomerID
	accountQuery := `
        INSERT INTO accounts (account_number, customer_id, account_type, branch_address, communication_sw, created_at, updated_at)
        VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
        RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, accountQuery,
		acc.AccountNumber,
		acc.CustomerID,
		acc.AccountType,
		acc.BranchAddress,
	).Scan(
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		monitoring.RecordDBQuery("create_account", "failure", time.Since(start))
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to insert account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert account: %w", apperrors.ErrDatabase, err)
	}
	acc.CommunicationSent = false

	if err = tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("create_customer_with_account", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Customer and account inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *account.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.logger.InfoContext(ctx, "Updating customer", slog.Int64("customerID", cust.CustomerID))

	query := `
        UPDATE customers
        SET name = $1,
            email = $2,
            mobile_number = $3,
            updated_at = NOW(),
            updated_by = $4
        WHERE customer_id = $5`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.Name,
		cust.Email,
		cust.MobileNumber,
		auditActor,
		cust.CustomerID,
	)
	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*account.Customer, error) {
	r.logger.DebugContext(ctx, "Finding customer by ID", slog.Int64("customerID", customerID))

	query := `
        SELECT customer_id, name, email, mobile_number, created_at, created_by, updated_at, updated_by
        FROM customers
        WHERE customer_id = $1`

	return r.scanCustomer(ctx, query, customerID)
}

func (r *CustomerRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*account.Customer, error) {
	r.logger.DebugContext(ctx, "Finding customer by mobile number")

	query := `
        SELECT customer_id, name, email, mobile_number, created_at, created_by, updated_at, updated_by
        FROM customers
        WHERE mobile_number = $1`

	return r.scanCustomer(ctx, query, mobileNumber)
}

func (r *CustomerRepository) scanCustomer(ctx context.Context, query string, arg any) (*account.Customer, error) {
	var cust account.Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&cust.CustomerID,
		&cust.Name,
		&cust.Email,
		&cust.MobileNumber,
		&cust.CreatedAt,
		&cust.CreatedBy,
		&cust.UpdatedAt,
		&cust.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customer: %w", apperrors.ErrDatabase, err)
	}
	return &cust, nil
}

func (r *CustomerRepository) DeleteWithAccount(ctx context.Context, customerID int64) (err error) {
	r.logger.InfoContext(ctx, "Deleting customer with account", slog.Int64("customerID", customerID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM accounts WHERE customer_id = $1`, customerID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete account: %w", apperrors.ErrDatabase, err)
	}

	res, err := tx.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}
	if res.RowsAffected() == 0 {
		err = apperrors.ErrNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer and account deleted", slog.Int64("customerID", customerID))
	return nil
}
