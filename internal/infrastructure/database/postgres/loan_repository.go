package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"banking-suite/internal/domain/loan"
	"banking-suite/internal/infrastructure/monitoring"
	"banking-suite/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLoanRepository, using default stderr handler")
	}
	return &LoanRepository{
		db:     db,
		logger: logger.With("component", "LoanRepository"),
	}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	start := time.Now()
	r.logger.InfoContext(ctx, "Inserting new loan", slog.String("loanNumber", l.LoanNumber))

	query := `
        INSERT INTO loans (loan_number, mobile_number, loan_type, total_loan, amount_paid, outstanding_amount, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING loan_id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		l.LoanNumber,
		l.MobileNumber,
		l.LoanType,
		l.TotalLoan,
		l.AmountPaid,
		l.OutstandingAmount,
	).Scan(
		&l.LoanID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		monitoring.RecordDBQuery("create_loan", "failure", time.Since(start))
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to insert loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("create_loan", "success", time.Since(start))
	return nil
}

func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.logger.InfoContext(ctx, "Updating loan", slog.Int64("loanID", l.LoanID))

	query := `
        UPDATE loans
        SET mobile_number = $1,
            loan_type = $2,
            total_loan = $3,
            amount_paid = $4,
            outstanding_amount = $5,
            updated_at = NOW()
        WHERE loan_id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		l.MobileNumber,
		l.LoanType,
		l.TotalLoan,
		l.AmountPaid,
		l.OutstandingAmount,
		l.LoanID,
	)
	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			return translated
		}
		r.logger.ErrorContext(ctx, "Failed to update loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update loan: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*loan.Loan, error) {
	r.logger.DebugContext(ctx, "Finding loan by mobile number")

	query := `
        SELECT loan_id, loan_number, mobile_number, loan_type, total_loan, amount_paid, outstanding_amount, created_at, updated_at
        FROM loans
        WHERE mobile_number = $1`

	return r.scanLoan(ctx, query, mobileNumber)
}

func (r *LoanRepository) FindByLoanNumber(ctx context.Context, loanNumber string) (*loan.Loan, error) {
	r.logger.DebugContext(ctx, "Finding loan by loan number", slog.String("loanNumber", loanNumber))

	query := `
        SELECT loan_id, loan_number, mobile_number, loan_type, total_loan, amount_paid, outstanding_amount, created_at, updated_at
        FROM loans
        WHERE loan_number = $1`

	return r.scanLoan(ctx, query, loanNumber)
}

func (r *LoanRepository) scanLoan(ctx context.Context, query string, arg any) (*loan.Loan, error) {
	var l loan.Loan
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&l.LoanID,
		&l.LoanNumber,
		&l.MobileNumber,
		&l.LoanType,
		&l.TotalLoan,
		&l.AmountPaid,
		&l.OutstandingAmount,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loan: %w", apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) Delete(ctx context.Context, loanID int64) error {
	r.logger.InfoContext(ctx, "Deleting loan", slog.Int64("loanID", loanID))

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1`, loanID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete loan: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
