package database

import (
	"context"
	"database/sql"
)

// TxRunner scopes a unit of work to a single database transaction.
// Every lifecycle and billing operation runs as exactly one
// transaction; commit and rollback happen here, at the call
// boundary, never inside repositories.  Tests substitute a stub
// runner that invokes fn directly.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type sqlRunner struct {
	db *sql.DB
}

// NewTxRunner returns a TxRunner backed by the given pool.
func NewTxRunner(db *sql.DB) TxRunner { return &sqlRunner{db: db} }

// RunTx begins a transaction, invokes fn, and commits when fn
// returns nil.  Any error from fn (or from commit) rolls the
// transaction back and is returned unchanged, so sentinel errors
// survive to the caller.
func (r *sqlRunner) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
