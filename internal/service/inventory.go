package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	models "github.com/tbakken/delelager/internal/models"
	repo "github.com/tbakken/delelager/internal/repo"
)

var (
	ErrUsernameRequired  = errors.New("username is required")
	ErrInvalidSortColumn = errors.New("invalid sort column")
)

const (
	defaultPage         = 1
	defaultItemsPerPage = 25
	defaultSortColumn   = "part_number"
)

// Notifier receives the post-mutation item count after every successful
// create, update or delete. Delivery is best effort.
type Notifier interface {
	Broadcast(count int)
}

// InventoryService orchestrates inventory mutations: identity check, prior
// state fetch, transactional write plus audit append, then notification.
type InventoryService struct {
	items    repo.ItemRepository
	audit    repo.AuditRepository
	tx       repo.TxRunner
	notifier Notifier
	log      zerolog.Logger
}

func NewInventoryService(items repo.ItemRepository, audit repo.AuditRepository, tx repo.TxRunner, notifier Notifier, log zerolog.Logger) *InventoryService {
	return &InventoryService{items: items, audit: audit, tx: tx, notifier: notifier, log: log}
}

// ListResult is one page of inventory items with normalized paging values.
type ListResult struct {
	Items        []models.Item
	Page         int
	ItemsPerPage int
	TotalItems   int
}

// List runs a paginated, filtered read. The sort column is checked against the
// allowlist before anything reaches the store.
func (s *InventoryService) List(ctx context.Context, page, itemsPerPage int, searchQuery, sortBy, sortOrder string) (ListResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if itemsPerPage < 1 {
		itemsPerPage = defaultItemsPerPage
	}
	if sortBy == "" {
		sortBy = defaultSortColumn
	}
	if !repo.IsSortColumn(sortBy) {
		return ListResult{}, ErrInvalidSortColumn
	}
	order := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		order = "DESC"
	}

	items, total, err := s.items.List(ctx, repo.ItemFilter{
		Page:         page,
		ItemsPerPage: itemsPerPage,
		SearchQuery:  searchQuery,
		SortBy:       sortBy,
		SortOrder:    order,
	})
	if err != nil {
		return ListResult{}, fmt.Errorf("list inventory: %w", err)
	}
	return ListResult{Items: items, Page: page, ItemsPerPage: itemsPerPage, TotalItems: total}, nil
}

// CreateItem inserts a new item and appends its CREATE audit entry in one
// transaction, then notifies subscribers.
func (s *InventoryService) CreateItem(ctx context.Context, username string, item models.Item) (models.Item, error) {
	if username == "" {
		return models.Item{}, ErrUsernameRequired
	}

	var created models.Item
	err := s.tx.Run(ctx, func(items repo.ItemRepository, audit repo.AuditRepository) error {
		var err error
		created, err = items.Create(ctx, item)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		return appendAudit(ctx, audit, username, models.ActionCreate, nil, &created)
	})
	if err != nil {
		return models.Item{}, err
	}

	s.notify(ctx)
	return created, nil
}

// UpdateItem rewrites an existing item, auditing the before/after pair.
// last_stock_count is only stamped when confirmStockCount is set; otherwise
// the stored value carries over.
func (s *InventoryService) UpdateItem(ctx context.Context, username string, item models.Item, confirmStockCount bool) (models.Item, error) {
	if username == "" {
		return models.Item{}, ErrUsernameRequired
	}

	var updated models.Item
	err := s.tx.Run(ctx, func(items repo.ItemRepository, audit repo.AuditRepository) error {
		prior, err := items.GetByID(ctx, item.ID)
		if err != nil {
			return err
		}
		updated, err = items.Update(ctx, item, confirmStockCount)
		if err != nil {
			return err
		}
		return appendAudit(ctx, audit, username, models.ActionUpdate, &prior, &updated)
	})
	if err != nil {
		return models.Item{}, err
	}

	s.notify(ctx)
	return updated, nil
}

// DeleteItem removes an item, auditing its final snapshot.
func (s *InventoryService) DeleteItem(ctx context.Context, username string, id int) error {
	if username == "" {
		return ErrUsernameRequired
	}

	err := s.tx.Run(ctx, func(items repo.ItemRepository, audit repo.AuditRepository) error {
		prior, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := items.Delete(ctx, id); err != nil {
			return err
		}
		return appendAudit(ctx, audit, username, models.ActionDelete, &prior, nil)
	})
	if err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

// Count returns the current total number of inventory rows.
func (s *InventoryService) Count(ctx context.Context) (int, error) {
	return s.items.Count(ctx)
}

// Report aggregates the full inventory for the report endpoint.
func (s *InventoryService) Report(ctx context.Context, username string) (models.Report, error) {
	if username == "" {
		return models.Report{}, ErrUsernameRequired
	}
	report, err := s.items.Report(ctx)
	if err != nil {
		return models.Report{}, fmt.Errorf("build report: %w", err)
	}
	if report.Items == nil {
		report.Items = []models.Item{}
	}
	return report, nil
}

func (s *InventoryService) notify(ctx context.Context) {
	count, err := s.items.Count(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("skipping update broadcast: count failed")
		return
	}
	s.notifier.Broadcast(count)
}

func appendAudit(ctx context.Context, audit repo.AuditRepository, username, action string, oldItem, newItem *models.Item) error {
	entry := models.AuditEntry{Username: username, Action: action}

	if oldItem != nil {
		raw, err := json.Marshal(oldItem)
		if err != nil {
			return fmt.Errorf("serialize old value: %w", err)
		}
		v := string(raw)
		entry.OldValue = &v
	}
	if newItem != nil {
		raw, err := json.Marshal(newItem)
		if err != nil {
			return fmt.Errorf("serialize new value: %w", err)
		}
		v := string(raw)
		entry.NewValue = &v
	}

	if _, err := audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
