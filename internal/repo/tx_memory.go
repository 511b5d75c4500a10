package repo

import "context"

// InMemoryTxRunner satisfies TxRunner for tests. It has no rollback; the
// callback runs directly against the shared in-memory repositories.
type InMemoryTxRunner struct {
	Items ItemRepository
	Audit AuditRepository
}

func NewInMemoryTxRunner(items ItemRepository, audit AuditRepository) *InMemoryTxRunner {
	return &InMemoryTxRunner{Items: items, Audit: audit}
}

func (r *InMemoryTxRunner) Run(_ context.Context, fn func(items ItemRepository, audit AuditRepository) error) error {
	return fn(r.Items, r.Audit)
}
