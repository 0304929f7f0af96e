package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run their queries against it so the same code works inside
// and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// Querier returns the transaction carried by ctx if one was started via
// WithinTx, otherwise the given fallback (normally the *sql.DB).
func Querier(ctx context.Context, fallback DBTX) DBTX {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return fallback
}

// Transactor wraps a *sql.DB so services can depend on an interface for
// transaction boundaries instead of the concrete database handle.
type Transactor struct {
	DB *sql.DB
}

// NewTransactor returns a Transactor over sqlDB.
func NewTransactor(sqlDB *sql.DB) *Transactor {
	return &Transactor{DB: sqlDB}
}

// WithinTx runs fn inside a single transaction on the wrapped database.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithinTx(ctx, t.DB, fn)
}

// WithinTx runs fn inside a single transaction. The transaction is carried
// through the context so repository calls made from fn join it via Querier.
// The transaction is rolled back if fn returns an error or panics, and
// committed otherwise.
func WithinTx(ctx context.Context, sqlDB *sql.DB, fn func(ctx context.Context) error) (err error) {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
