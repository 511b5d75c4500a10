package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	models "github.com/tbakken/delelager/internal/models"
)

// InMemoryItemRepository is an in-memory implementation of ItemRepository.
type InMemoryItemRepository struct {
	mu     sync.Mutex
	items  []models.Item
	nextID int
}

// NewInMemoryItemRepository creates a new instance of InMemoryItemRepository.
func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  []models.Item{},
		nextID: 1,
	}
}

func matchesSearch(item models.Item, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []*string{item.PartNumber, item.Name, item.Description, item.Location} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortItems(items []models.Item, sortBy, sortOrder string) {
	less := func(a, b models.Item) bool {
		switch sortBy {
		case "name":
			return strValue(a.Name) < strValue(b.Name)
		case "description":
			return strValue(a.Description) < strValue(b.Description)
		case "location":
			return strValue(a.Location) < strValue(b.Location)
		case "purchase_price":
			return a.PurchasePrice < b.PurchasePrice
		case "sale_price":
			return a.SalePrice < b.SalePrice
		case "quantity":
			return a.Quantity < b.Quantity
		default:
			return strValue(a.PartNumber) < strValue(b.PartNumber)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if sortOrder == "DESC" {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (r *InMemoryItemRepository) List(_ context.Context, f ItemFilter) ([]models.Item, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Item
	for _, item := range r.items {
		if matchesSearch(item, f.SearchQuery) {
			filtered = append(filtered, item)
		}
	}
	sortItems(filtered, f.SortBy, f.SortOrder)

	total := len(filtered)
	start := (f.Page - 1) * f.ItemsPerPage
	if start > total {
		return []models.Item{}, total, nil
	}
	end := start + f.ItemsPerPage
	if end > total {
		end = total
	}
	return append([]models.Item{}, filtered[start:end]...), total, nil
}

func (r *InMemoryItemRepository) GetByID(_ context.Context, id int) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *InMemoryItemRepository) Report(_ context.Context) (models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := models.Report{Items: append([]models.Item{}, r.items...)}
	for _, item := range report.Items {
		report.TotalValue += float64(item.Quantity) * item.PurchasePrice
		report.TotalItems += item.Quantity
	}
	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if strValue(a.Location) != strValue(b.Location) {
			return strValue(a.Location) < strValue(b.Location)
		}
		return strValue(a.PartNumber) < strValue(b.PartNumber)
	})
	return report, nil
}

func (r *InMemoryItemRepository) Create(_ context.Context, item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	item.LastModified = time.Now().Format(models.TimeFormat)
	item.LastStockCount = nil
	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryItemRepository) Update(_ context.Context, item models.Item, confirmStockCount bool) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID != item.ID {
			continue
		}
		now := time.Now().Format(models.TimeFormat)
		item.LastModified = now
		if confirmStockCount {
			item.LastStockCount = &now
		} else {
			item.LastStockCount = existing.LastStockCount
		}
		r.items[i] = item
		return item, nil
	}
	return models.Item{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear removes all items. Test helper.
func (r *InMemoryItemRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = []models.Item{}
	r.nextID = 1
}
