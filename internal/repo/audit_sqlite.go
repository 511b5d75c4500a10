package repo

import (
	"context"
	"database/sql"
	"time"

	models "github.com/tbakken/delelager/internal/models"
)

type SQLiteAuditRepository struct {
	q querier
}

func NewSQLiteAuditRepository(db *sql.DB) *SQLiteAuditRepository {
	return &SQLiteAuditRepository{q: db}
}

func (r *SQLiteAuditRepository) Append(ctx context.Context, e models.AuditEntry) (models.AuditEntry, error) {
	e.Timestamp = time.Now().Format(models.TimeFormat)
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO audit_log (username, action, old_value, new_value, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		e.Username, e.Action, e.OldValue, e.NewValue, e.Timestamp,
	)
	if err != nil {
		return models.AuditEntry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.AuditEntry{}, err
	}
	e.ID = int(id)
	return e, nil
}

func (r *SQLiteAuditRepository) List(ctx context.Context, page, itemsPerPage int) ([]models.AuditEntry, int, error) {
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * itemsPerPage
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, username, action, old_value, new_value, timestamp
		FROM audit_log
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?`, itemsPerPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var oldValue, newValue sql.NullString
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &oldValue, &newValue, &e.Timestamp); err != nil {
			return nil, 0, err
		}
		e.OldValue = nullableString(oldValue)
		e.NewValue = nullableString(newValue)
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
