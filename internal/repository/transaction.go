package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/ledger-api/internal/domain"
)

const transactionColumns = `id, account_id, amount, type, created_at, deleted_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tr *domain.Transaction) error {
	if err := insertTransaction(ctx, r.db, tr); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// CreateInTx journals an entry inside the caller's transaction so the record
// commits or rolls back together with the balance change it describes.
func (r *TransactionRepository) CreateInTx(ctx context.Context, tx *sql.Tx, tr *domain.Transaction) error {
	if err := insertTransaction(ctx, tx, tr); err != nil {
		return fmt.Errorf("CreateInTx: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, e execer, tr *domain.Transaction) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, amount, type, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		tr.ID, tr.AccountID, tr.Amount, tr.Type, tr.CreatedAt, tr.DeletedAt,
	)
	return err
}

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 AND deleted_at IS NULL ORDER BY created_at`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByAccountID: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tr, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByAccountID: scan: %w", err)
		}
		transactions = append(transactions, *tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByAccountID: rows: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		deletedAt, id,
	)
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SoftDelete: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("SoftDelete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var tr domain.Transaction
	err := s.Scan(
		&tr.ID, &tr.AccountID, &tr.Amount, &tr.Type,
		&tr.CreatedAt, &tr.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}
