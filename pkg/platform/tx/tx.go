package tx

import (
	"context"
	"database/sql"
	"fmt"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Querier is the read surface shared by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// QuerierFrom returns the transaction carried by ctx, or db when there is none.
func QuerierFrom(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

// ReadOnlyRunner runs a function inside a read-only, repeatable-read
// transaction so every read in fn sees the same snapshot.
type ReadOnlyRunner struct {
	db *sql.DB
}

// NewReadOnlyRunner constructs a runner over db.
func NewReadOnlyRunner(db *sql.DB) *ReadOnlyRunner {
	return &ReadOnlyRunner{db: db}
}

// RunReadOnly begins the transaction, hands fn a context carrying it and
// always rolls back; there is nothing to commit on a read-only snapshot.
func (r *ReadOnlyRunner) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	return fn(WithTx(ctx, tx))
}

// NoopRunner runs fn directly. Used by stores without transactions.
type NoopRunner struct{}

func (NoopRunner) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
