package repo

import (
	"context"
	"sync"
	"time"

	models "github.com/tbakken/delelager/internal/models"
)

// InMemoryAuditRepository is an in-memory implementation of AuditRepository.
type InMemoryAuditRepository struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	nextID  int
}

// NewInMemoryAuditRepository creates a new instance of InMemoryAuditRepository.
func NewInMemoryAuditRepository() *InMemoryAuditRepository {
	return &InMemoryAuditRepository{
		entries: []models.AuditEntry{},
		nextID:  1,
	}
}

func (r *InMemoryAuditRepository) Append(_ context.Context, e models.AuditEntry) (models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	e.Timestamp = time.Now().Format(models.TimeFormat)
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *InMemoryAuditRepository) List(_ context.Context, page, itemsPerPage int) ([]models.AuditEntry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := len(r.entries)

	// Newest first: entries are appended in order, so walk backwards.
	newest := make([]models.AuditEntry, 0, total)
	for i := total - 1; i >= 0; i-- {
		newest = append(newest, r.entries[i])
	}

	start := (page - 1) * itemsPerPage
	if start > total {
		return []models.AuditEntry{}, total, nil
	}
	end := start + itemsPerPage
	if end > total {
		end = total
	}
	return newest[start:end], total, nil
}

// Entries returns a copy of all entries in append order. Test helper.
func (r *InMemoryAuditRepository) Entries() []models.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditEntry{}, r.entries...)
}

// Clear removes all entries. Test helper.
func (r *InMemoryAuditRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = []models.AuditEntry{}
	r.nextID = 1
}
