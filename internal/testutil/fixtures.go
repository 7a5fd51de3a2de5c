package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledger-api/internal/domain"
)

func SeedAccount(t *testing.T, db *sql.DB, owner string, balance decimal.Decimal) *domain.Account {
	t.Helper()

	now := time.Now().UTC()
	a := &domain.Account{
		ID:        uuid.New(),
		Owner:     owner,
		Balance:   balance,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.Exec(
		`INSERT INTO accounts (id, owner, balance, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Owner, a.Balance, a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("seed account %s: %v", owner, err)
	}
	return a
}

func SeedTransaction(t *testing.T, db *sql.DB, accountID uuid.UUID, amount decimal.Decimal, txType domain.TransactionType) *domain.Transaction {
	t.Helper()

	tr := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO transactions (id, account_id, amount, type, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tr.ID, tr.AccountID, tr.Amount, tr.Type, tr.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed transaction for account %s: %v", accountID, err)
	}
	return tr
}

func GetBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("get balance %s: %v", accountID, err)
	}
	return balance
}

func CountTransactions(t *testing.T, db *sql.DB, accountID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1 AND deleted_at IS NULL`,
		accountID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for account %s: %v", accountID, err)
	}
	return count
}
