package repo

import (
	"context"

	models "github.com/tbakken/delelager/internal/models"
)

// AuditRepository persists the append-only audit log. Entries are never
// updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, e models.AuditEntry) (models.AuditEntry, error)
	// List returns one page of entries, newest first, plus the total count.
	List(ctx context.Context, page, itemsPerPage int) ([]models.AuditEntry, int, error)
}

// TxRunner runs fn against repositories bound to a single transaction so the
// row write and the audit append of one mutation commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(items ItemRepository, audit AuditRepository) error) error
}
