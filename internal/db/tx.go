package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection runs units of work inside database transactions. A service
// operation either commits as a whole or leaves no trace.
type Connection interface {
	// InTx begins a transaction, runs fn with it, and commits iff fn returns
	// nil. Any error from fn rolls the transaction back and is returned
	// unchanged to the caller.
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type pgxConnection struct {
	pool *pgxpool.Pool
}

// NewConnection wraps a pgx pool as a transactional Connection.
func NewConnection(pool *pgxpool.Pool) Connection {
	return &pgxConnection{pool: pool}
}

func (c *pgxConnection) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}
	// Rollback is a no-op once the transaction has been committed.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction failed: %w", err)
	}
	return nil
}

// InTxResult runs a value-returning unit of work on the given Connection.
func InTxResult[T any](ctx context.Context, c Connection, fn func(tx pgx.Tx) (T, error)) (T, error) {
	var out T
	err := c.InTx(ctx, func(tx pgx.Tx) error {
		v, err := fn(tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
