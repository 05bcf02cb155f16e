package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"banking-suite/internal/domain/account"
	"banking-suite/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCustomerRepository(mockPool, testLogger)

	return ctx, repo, mockPool
}

func TestCustomerRepositoryCreateWithAccount(t *testing.T) {
	now := time.Now()

	t.Run("successful create", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		cust := &account.Customer{Name: "John Doe", Email: "john@example.com", MobileNumber: "4354437687"}
		acc := account.NewAccount(0)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery(`INSERT INTO customers`).
			WithArgs(cust.Name, cust.Email, cust.MobileNumber, auditActor).
			WillReturnRows(pgxmock.NewRows([]string{"customer_id", "created_at", "updated_at"}).
				AddRow(int64(7), now, now))
		mockPool.ExpectQuery(`INSERT INTO accounts`).
			WithArgs(acc.AccountNumber, int64(7), acc.AccountType, acc.BranchAddress).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now))
		mockPool.ExpectCommit()

		err := repo.CreateWithAccount(ctx, cust, acc)
		require.NoError(t, err)
		assert.Equal(t, int64(7), cust.CustomerID)
		assert.Equal(t, int64(7), acc.CustomerID)
		assert.Equal(t, auditActor, cust.CreatedBy)
		assert.False(t, acc.CommunicationSent)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("duplicate mobile number maps to already exists", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		cust := &account.Customer{Name: "John Doe", Email: "john@example.com", MobileNumber: "4354437687"}
		acc := account.NewAccount(0)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery(`INSERT INTO customers`).
			WithArgs(cust.Name, cust.Email, cust.MobileNumber, auditActor).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_mobile_number_key"})
		mockPool.ExpectRollback()

		err := repo.CreateWithAccount(ctx, cust, acc)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("account insert failure rolls back", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		cust := &account.Customer{Name: "John Doe", Email: "john@example.com", MobileNumber: "4354437687"}
		acc := account.NewAccount(0)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery(`INSERT INTO customers`).
			WithArgs(cust.Name, cust.Email, cust.MobileNumber, auditActor).
			WillReturnRows(pgxmock.NewRows([]string{"customer_id", "created_at", "updated_at"}).
				AddRow(int64(7), now, now))
		mockPool.ExpectQuery(`INSERT INTO accounts`).
			WithArgs(acc.AccountNumber, int64(7), acc.AccountType, acc.BranchAddress).
			WillReturnError(context.DeadlineExceeded)
		mockPool.ExpectRollback()

		err := repo.CreateWithAccount(ctx, cust, acc)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})
}

func TestCustomerRepositoryFindByMobileNumber(t *testing.T) {
	now := time.Now()
	columns := []string{"customer_id", "name", "email", "mobile_number", "created_at", "created_by", "updated_at", "updated_by"}

	t.Run("found", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT (.+) FROM customers`).
			WithArgs("4354437687").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(7), "John Doe", "john@example.com", "4354437687", now, auditActor, now, auditActor))

		cust, err := repo.FindByMobileNumber(ctx, "4354437687")
		require.NoError(t, err)
		assert.Equal(t, int64(7), cust.CustomerID)
		assert.Equal(t, "John Doe", cust.Name)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("not found", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(`SELECT (.+) FROM customers`).
			WithArgs("0000000000").
			WillReturnRows(pgxmock.NewRows(columns))

		cust, err := repo.FindByMobileNumber(ctx, "0000000000")
		assert.Nil(t, cust)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})
}

func TestCustomerRepositoryUpdate(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := &account.Customer{CustomerID: 7, Name: "John Doe", Email: "john@example.com", MobileNumber: "4354437687"}

	t.Run("successful update", func(t *testing.T) {
		mockPool.ExpectExec(`UPDATE customers`).
			WithArgs(cust.Name, cust.Email, cust.MobileNumber, auditActor, cust.CustomerID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, cust)
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("missing customer", func(t *testing.T) {
		mockPool.ExpectExec(`UPDATE customers`).
			WithArgs(cust.Name, cust.Email, cust.MobileNumber, auditActor, cust.CustomerID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, cust)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})
}

func TestCustomerRepositoryDeleteWithAccount(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		mockPool.ExpectBegin()
		mockPool.ExpectExec(`DELETE FROM accounts`).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mockPool.ExpectExec(`DELETE FROM customers`).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mockPool.ExpectCommit()

		err := repo.DeleteWithAccount(ctx, 7)
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("missing customer", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		mockPool.ExpectBegin()
		mockPool.ExpectExec(`DELETE FROM accounts`).
			WithArgs(int64(404)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mockPool.ExpectExec(`DELETE FROM customers`).
			WithArgs(int64(404)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mockPool.ExpectRollback()

		err := repo.DeleteWithAccount(ctx, 404)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})
}
