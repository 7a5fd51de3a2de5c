package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/ledger-api/internal/domain"
	"github.com/finledger/ledger-api/internal/repository"
	"github.com/finledger/ledger-api/internal/service"
)

const accountCols = "id, owner, balance, version, created_at, updated_at, deleted_at"

func newLedgerService(t *testing.T) (*service.LedgerService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewLedgerService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewDB(db, 0),
	)
	return svc, mock
}

func accountRow(id uuid.UUID, owner, balance string, version int64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "owner", "balance", "version", "created_at", "updated_at", "deleted_at"}).
		AddRow(id.String(), owner, balance, version, now, now, nil)
}

func TestCreateAccountValidation(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		owner   string
		balance decimal.Decimal
		wantErr error
	}{
		{"empty owner", "", decimal.NewFromInt(100), domain.ErrInvalidOwner},
		{"whitespace owner", "   ", decimal.Zero, domain.ErrInvalidOwner},
		{"negative balance", "alice", decimal.NewFromInt(-1), domain.ErrNegativeBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(ctx, tt.owner, tt.balance)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateAccount(t *testing.T) {
	svc, mock := newLedgerService(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg(), int64(1),
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	account, err := svc.CreateAccount(ctx, "alice", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Owner)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1), account.Version)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Nil(t, account.DeletedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccountZeroBalance(t *testing.T) {
	svc, mock := newLedgerService(t)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	account, err := svc.CreateAccount(context.Background(), "bob", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestDepositValidation(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.Deposit(ctx, uuid.New(), amount)
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestWithdrawValidation(t *testing.T) {
	svc, _ := newLedgerService(t)
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.Withdraw(ctx, uuid.New(), amount)
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestDeposit(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT `+accountCols+` FROM accounts WHERE id = \$1 AND deleted_at IS NULL FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(accountRow(id, "alice", "100", 1))
	mock.ExpectExec("UPDATE accounts SET balance =").
		WithArgs(sqlmock.AnyArg(), int64(2), sqlmock.AnyArg(), id, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), id, sqlmock.AnyArg(), domain.TransactionTypeDeposit, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account, err := svc.Deposit(context.Background(), id, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)),
		"expected balance 150, got %s", account.Balance)
	assert.Equal(t, int64(2), account.Version)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdraw(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id).
		WillReturnRows(accountRow(id, "alice", "100", 3))
	mock.ExpectExec("UPDATE accounts SET balance =").
		WithArgs(sqlmock.AnyArg(), int64(4), sqlmock.AnyArg(), id, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), id, sqlmock.AnyArg(), domain.TransactionTypeWithdrawal, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account, err := svc.Withdraw(context.Background(), id, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(60)),
		"expected balance 60, got %s", account.Balance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id).
		WillReturnRows(accountRow(id, "alice", "100", 1))
	mock.ExpectRollback()

	_, err := svc.Withdraw(context.Background(), id, decimal.NewFromInt(150))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawExactBalance(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id).
		WillReturnRows(accountRow(id, "alice", "50", 1))
	mock.ExpectExec("UPDATE accounts SET balance =").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account, err := svc.Withdraw(context.Background(), id, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestDepositAccountNotFound(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Deposit(context.Background(), id, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAccount(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id).
		WillReturnRows(accountRow(id, "alice", "100", 1))
	mock.ExpectExec("UPDATE accounts SET owner =").
		WithArgs("alice smith", sqlmock.AnyArg(), int64(2), sqlmock.AnyArg(), id, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account, err := svc.UpdateAccount(context.Background(), id, "alice smith", decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, "alice smith", account.Owner)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(250)))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAccountEmptyOwner(t *testing.T) {
	svc, _ := newLedgerService(t)

	_, err := svc.UpdateAccount(context.Background(), uuid.New(), "", decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrInvalidOwner)
}

func TestDeleteAccount(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE accounts SET deleted_at =").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeleteAccount(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountAlreadyDeleted(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE accounts SET deleted_at =").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteAccount(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAccountNotFound(t *testing.T) {
	svc, mock := newLedgerService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetAccount(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
