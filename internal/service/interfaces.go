package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledger-api/internal/domain"
)

type accountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal, newVersion int64, updatedAt time.Time) error
	Update(ctx context.Context, tx *sql.Tx, id uuid.UUID, owner string, balance decimal.Decimal, newVersion int64, updatedAt time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
}

type transactionRepository interface {
	Create(ctx context.Context, tr *domain.Transaction) error
	CreateInTx(ctx context.Context, tx *sql.Tx, tr *domain.Transaction) error
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
}

type txBeginner interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
}
