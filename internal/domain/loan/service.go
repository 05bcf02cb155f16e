package loan

import (
	"banking-suite/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type LoanService interface {
	CreateLoan(ctx context.Context, mobileNumber string) (*Loan, error)

	FetchLoan(ctx context.Context, mobileNumber string) (*Loan, error)

	UpdateLoan(ctx context.Context, loan *Loan) (bool, error)

	DeleteLoan(ctx context.Context, mobileNumber string) (bool, error)
}

type loanService struct {
	repo   Repository
	logger *slog.Logger
}

var _ LoanService = (*loanService)(nil)

func NewLoanService(repo Repository, logger *slog.Logger) LoanService {
	if repo == nil {
		panic("loan repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLoanService, using default stderr handler")
	}
	return &loanService{
		repo:   repo,
		logger: logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanService) CreateLoan(ctx context.Context, mobileNumber string) (*Loan, error) {
	s.logger.InfoContext(ctx, "Attempting to create new loan")

	mobileNumber = strings.TrimSpace(mobileNumber)
	if mobileNumber == "" {
		return nil, fmt.Errorf("%w: mobile number cannot be empty", apperrors.ErrInvalidArgument)
	}

	// Fast path; the unique constraint on mobile_number settles races.
	existing, err := s.repo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Failed to check for existing loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check for existing loan: %w", err)
	}
	if existing != nil {
		s.logger.WarnContext(ctx, "Loan already registered with given mobile number")
		return nil, fmt.Errorf("%w: loan already registered with given mobile number %s", apperrors.ErrAlreadyExists, mobileNumber)
	}

	newLoan := NewLoan(mobileNumber)
	if err := s.repo.Create(ctx, newLoan); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: loan already registered with given mobile number %s", apperrors.ErrAlreadyExists, mobileNumber)
		}
		s.logger.ErrorContext(ctx, "Failed to persist loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to create loan: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Loan created successfully", slog.String("loanNumber", newLoan.LoanNumber))
	return newLoan, nil
}

func (s *loanService) FetchLoan(ctx context.Context, mobileNumber string) (*Loan, error) {
	s.logger.DebugContext(ctx, "Fetching loan")

	found, err := s.repo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Loan", "mobileNumber", mobileNumber)
		}
		return nil, fmt.Errorf("%w: failed to fetch loan: %v", apperrors.ErrInternalServer, err)
	}
	return found, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, l *Loan) (bool, error) {
	if l == nil {
		return false, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	s.logger.DebugContext(ctx, "Updating loan", slog.String("loanNumber", l.LoanNumber))

	if !l.OutstandingAmount.Equal(l.TotalLoan.Sub(l.AmountPaid)) {
		s.logger.WarnContext(ctx, "Rejected inconsistent loan amounts",
			slog.String("totalLoan", l.TotalLoan.String()),
			slog.String("amountPaid", l.AmountPaid.String()),
			slog.String("outstandingAmount", l.OutstandingAmount.String()),
		)
		return false, apperrors.NewValidationError("outstandingAmount", "outstanding amount must equal total loan minus amount paid")
	}

	existing, err := s.repo.FindByLoanNumber(ctx, l.LoanNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Loan", "loanNumber", l.LoanNumber)
		}
		return false, fmt.Errorf("%w: failed to fetch loan: %v", apperrors.ErrInternalServer, err)
	}

	existing.MobileNumber = l.MobileNumber
	existing.LoanType = l.LoanType
	existing.TotalLoan = l.TotalLoan
	existing.AmountPaid = l.AmountPaid
	existing.OutstandingAmount = l.OutstandingAmount
	if err := s.repo.Update(ctx, existing); err != nil {
		return false, fmt.Errorf("%w: failed to update loan: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Loan updated successfully", slog.String("loanNumber", l.LoanNumber))
	return true, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, mobileNumber string) (bool, error) {
	s.logger.InfoContext(ctx, "Deleting loan")

	found, err := s.repo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewResourceNotFoundError("Loan", "mobileNumber", mobileNumber)
		}
		return false, fmt.Errorf("%w: failed to fetch loan: %v", apperrors.ErrInternalServer, err)
	}

	if err := s.repo.Delete(ctx, found.LoanID); err != nil {
		return false, fmt.Errorf("%w: failed to delete loan: %v", apperrors.ErrInternalServer, err)
	}

	s.logger.InfoContext(ctx, "Loan deleted successfully", slog.Int64("loanID", found.LoanID))
	return true, nil
}
