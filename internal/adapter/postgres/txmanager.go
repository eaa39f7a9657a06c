package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTxAttempts bounds how often RunInTx runs fn when Postgres aborts
// the transaction with a serialization failure or a deadlock.
const DefaultTxAttempts = 3

// TxManager runs functions inside a transaction carried by the context.
// Nested RunInTx calls join the outer transaction.
type TxManager struct {
	pool     *pgxpool.Pool
	attempts int
}

// NewTxManager creates a TxManager with DefaultTxAttempts.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool, attempts: DefaultTxAttempts}
}

// WithAttempts returns a copy that runs fn at most n times (n >= 1).
func (m *TxManager) WithAttempts(n int) *TxManager {
	cp := *m
	cp.attempts = max(n, 1)
	return &cp
}

// RunInTx executes fn in a Read Committed transaction. An error from fn rolls
// back and is returned as is; a panic rolls back and re-panics. When the
// transaction fails with 40001 or 40P01 the whole of fn is run again, so fn
// must not have side effects outside the database.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", m.attempts, err)
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isRetryable matches serialization_failure and deadlock_detected.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
