package repo

import (
	"context"

	models "github.com/tbakken/delelager/internal/models"
)

// ItemFilter describes a paginated, searchable, sorted read of the inventory.
// Callers normalize it first: Page and ItemsPerPage are at least 1, SortBy is
// one of the allow-listed columns and SortOrder is "ASC" or "DESC".
type ItemFilter struct {
	Page         int
	ItemsPerPage int
	SearchQuery  string
	SortBy       string
	SortOrder    string
}

// ItemRepository defines the interface for inventory data operations.
type ItemRepository interface {
	List(ctx context.Context, f ItemFilter) ([]models.Item, int, error)
	GetByID(ctx context.Context, id int) (models.Item, error)
	Count(ctx context.Context) (int, error)
	Report(ctx context.Context) (models.Report, error)
	Create(ctx context.Context, item models.Item) (models.Item, error)
	// Update rewrites every caller-editable column and stamps last_modified.
	// last_stock_count is only touched when confirmStockCount is set.
	Update(ctx context.Context, item models.Item, confirmStockCount bool) (models.Item, error)
	Delete(ctx context.Context, id int) error
}

var sortColumns = []string{
	"part_number", "name", "description", "location",
	"purchase_price", "sale_price", "quantity",
}

// IsSortColumn reports whether c is an allow-listed sort column. User-supplied
// sort values never reach a query unless they pass this check.
func IsSortColumn(c string) bool {
	for _, col := range sortColumns {
		if c == col {
			return true
		}
	}
	return false
}
