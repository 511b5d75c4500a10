package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteTxRunner runs mutation callbacks inside a single SQLite transaction.
type SQLiteTxRunner struct {
	db *sql.DB
}

func NewSQLiteTxRunner(db *sql.DB) *SQLiteTxRunner {
	return &SQLiteTxRunner{db: db}
}

func (r *SQLiteTxRunner) Run(ctx context.Context, fn func(items ItemRepository, audit AuditRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&SQLiteItemRepository{q: tx}, &SQLiteAuditRepository{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
