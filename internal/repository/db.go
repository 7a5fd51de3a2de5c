package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/finledger/ledger-api/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

// DB wraps the connection pool and owns transaction setup. Every transaction
// runs with a bounded lock_timeout so a mutation that cannot acquire its
// account row fails fast instead of queueing behind a long-running lock.
type DB struct {
	pool        *sql.DB
	lockTimeout time.Duration
}

func NewDB(pool *sql.DB, lockTimeout time.Duration) *DB {
	return &DB{pool: pool, lockTimeout: lockTimeout}
}

func (d *DB) Conn() *sql.DB {
	return d.pool
}

func (d *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("BeginTx: %w", err)
	}

	if d.lockTimeout > 0 {
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.lockTimeout.Milliseconds()))
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("BeginTx: set lock_timeout: %w", err)
		}
	}

	return tx, nil
}

// pq raises 55P03 (lock_not_available) when lock_timeout expires.
func mapLockError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "55P03" {
		return domain.ErrBusy
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrBusy
	}
	return err
}
