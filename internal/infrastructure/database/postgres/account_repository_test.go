package postgres

import (
	"context"
	"testing"
	"time"

	"banking-suite/internal/domain/account"
	"banking-suite/internal/pkg/apperrors"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccountRepo(t *testing.T) (context.Context, *AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	return context.Background(), NewAccountRepository(mockPool, testLogger), mockPool
}

func TestAccountRepositoryUpdate(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	acc := &account.Account{
		AccountNumber:     1354644071,
		AccountType:       account.AccountTypeSavings,
		BranchAddress:     account.DefaultBranchAddress,
		CommunicationSent: true,
	}

	t.Run("successful update", func(t *testing.T) {
		mockPool.ExpectExec(`UPDATE accounts`).
			WithArgs(acc.AccountType, acc.BranchAddress, acc.CommunicationSent, acc.AccountNumber).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.Update(ctx, acc))
	})

	t.Run("missing account", func(t *testing.T) {
		mockPool.ExpectExec(`UPDATE accounts`).
			WithArgs(acc.AccountType, acc.BranchAddress, acc.CommunicationSent, acc.AccountNumber).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.Update(ctx, acc), apperrors.ErrNotFound)
	})

	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountRepositoryFindByCustomerID(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	now := time.Now()
	mockPool.ExpectQuery(`SELECT (.+) FROM accounts`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"account_number", "customer_id", "account_type", "branch_address", "communication_sw", "created_at", "updated_at"}).
			AddRow(int64(1354644071), int64(7), account.AccountTypeSavings, account.DefaultBranchAddress, false, now, now))

	acc, err := repo.FindByCustomerID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1354644071), acc.AccountNumber)
	assert.Equal(t, account.AccountTypeSavings, acc.AccountType)
	assert.False(t, acc.CommunicationSent)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountRepositoryListUnsentCommunications(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	now := time.Now()
	columns := []string{
		"account_number", "customer_id", "account_type", "branch_address", "communication_sw", "created_at", "updated_at",
		"c_customer_id", "name", "email", "mobile_number", "c_created_at", "created_by", "c_updated_at", "updated_by",
	}
	mockPool.ExpectQuery(`SELECT (.+) FROM accounts a\s+JOIN customers c`).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1354644071), int64(7), account.AccountTypeSavings, account.DefaultBranchAddress, false, now, now,
				int64(7), "John Doe", "john@example.com", "4354437687", now, auditActor, now, auditActor).
			AddRow(int64(1860952156), int64(8), account.AccountTypeSavings, account.DefaultBranchAddress, false, now, now,
				int64(8), "Jane Roe", "jane@example.com", "9103240346", now, auditActor, now, auditActor))

	pending, err := repo.ListUnsentCommunications(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(1354644071), pending[0].Account.AccountNumber)
	assert.Equal(t, "John Doe", pending[0].Customer.Name)
	assert.Equal(t, "9103240346", pending[1].Customer.MobileNumber)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
