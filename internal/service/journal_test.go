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

func newJournalService(t *testing.T) (*service.JournalService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return service.NewJournalService(repository.NewTransactionRepository(db)), mock
}

func TestRecordTransaction(t *testing.T) {
	svc, mock := newJournalService(t)
	accountID := uuid.New()

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), accountID, sqlmock.AnyArg(), domain.TransactionTypeDeposit, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tr, err := svc.RecordTransaction(context.Background(), accountID, decimal.NewFromInt(25), domain.TransactionTypeDeposit)
	require.NoError(t, err)
	assert.Equal(t, accountID, tr.AccountID)
	assert.Equal(t, domain.TransactionTypeDeposit, tr.Type)
	assert.NotEqual(t, uuid.Nil, tr.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionInvalidType(t *testing.T) {
	svc, _ := newJournalService(t)

	for _, typ := range []domain.TransactionType{"", "refund", "Deposit"} {
		_, err := svc.RecordTransaction(context.Background(), uuid.New(), decimal.NewFromInt(5), typ)
		require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
	}
}

func TestListTransactions(t *testing.T) {
	svc, mock := newJournalService(t)
	accountID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "account_id", "amount", "type", "created_at", "deleted_at"}).
		AddRow(uuid.NewString(), accountID.String(), "25", "deposit", now, nil).
		AddRow(uuid.NewString(), accountID.String(), "10", "withdrawal", now, nil)
	mock.ExpectQuery("SELECT .* FROM transactions").
		WithArgs(accountID).
		WillReturnRows(rows)

	transactions, err := svc.ListTransactions(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, domain.TransactionTypeDeposit, transactions[0].Type)
	assert.Equal(t, domain.TransactionTypeWithdrawal, transactions[1].Type)
}

func TestListTransactionsEmpty(t *testing.T) {
	svc, mock := newJournalService(t)
	accountID := uuid.New()

	mock.ExpectQuery("SELECT .* FROM transactions").
		WithArgs(accountID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "amount", "type", "created_at", "deleted_at"}))

	transactions, err := svc.ListTransactions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestDeleteTransaction(t *testing.T) {
	svc, mock := newJournalService(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE transactions SET deleted_at =").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeleteTransaction(context.Background(), id))
}

func TestDeleteTransactionNotFound(t *testing.T) {
	svc, mock := newJournalService(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE transactions SET deleted_at =").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteTransaction(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
