package repo

import (
	"context"
	"fmt"
	"testing"

	models "github.com/tbakken/delelager/internal/models"
)

func strPtr(s string) *string { return &s }

func seedItems(t *testing.T, r *InMemoryItemRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := r.Create(context.Background(), models.Item{
			PartNumber:    strPtr(fmt.Sprintf("P%03d", i)),
			Name:          strPtr(fmt.Sprintf("Item %d", i)),
			Description:   strPtr(""),
			Location:      strPtr(fmt.Sprintf("L%d", i%3)),
			PurchasePrice: float64(i),
			SalePrice:     float64(i * 2),
			Quantity:      n - i,
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestListOffsetAndBound(t *testing.T) {
	r := NewInMemoryItemRepository()
	seedItems(t, r, 30)

	tests := []struct {
		page, perPage int
		wantLen       int
		wantFirst     string
	}{
		{1, 25, 25, "P000"},
		{2, 25, 5, "P025"},
		{3, 25, 0, ""},
		{2, 10, 10, "P010"},
	}
	for _, tt := range tests {
		items, total, err := r.List(context.Background(), ItemFilter{
			Page: tt.page, ItemsPerPage: tt.perPage, SortBy: "part_number", SortOrder: "ASC",
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if total != 30 {
			t.Errorf("page %d: expected total 30, got %d", tt.page, total)
		}
		if len(items) != tt.wantLen {
			t.Errorf("page %d/%d: expected %d items, got %d", tt.page, tt.perPage, tt.wantLen, len(items))
		}
		if tt.wantLen > 0 && *items[0].PartNumber != tt.wantFirst {
			t.Errorf("page %d/%d: expected first %s, got %s", tt.page, tt.perPage, tt.wantFirst, *items[0].PartNumber)
		}
	}
}

func TestListSortColumnsAndOrder(t *testing.T) {
	r := NewInMemoryItemRepository()
	seedItems(t, r, 5)

	items, _, err := r.List(context.Background(), ItemFilter{
		Page: 1, ItemsPerPage: 25, SortBy: "quantity", SortOrder: "DESC",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Quantity < items[i].Quantity {
			t.Fatalf("quantity not descending at %d: %d < %d", i, items[i-1].Quantity, items[i].Quantity)
		}
	}
}

func TestListSearchAcrossFields(t *testing.T) {
	r := NewInMemoryItemRepository()
	ctx := context.Background()
	_, _ = r.Create(ctx, models.Item{PartNumber: strPtr("AX-7"), Name: strPtr("Bolt"), Description: strPtr("hex head"), Location: strPtr("shelf 9")})
	_, _ = r.Create(ctx, models.Item{PartNumber: strPtr("BZ-1"), Name: strPtr("Nut"), Description: strPtr("locking"), Location: strPtr("bin 2")})

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"ax-7", 1},  // part number, case-insensitive
		{"BOLT", 1},  // name
		{"hex", 1},   // description
		{"bin", 1},   // location
		{"missing", 0},
	}
	for _, tt := range tests {
		_, total, err := r.List(ctx, ItemFilter{Page: 1, ItemsPerPage: 25, SearchQuery: tt.query, SortBy: "part_number", SortOrder: "ASC"})
		if err != nil {
			t.Fatalf("list %q failed: %v", tt.query, err)
		}
		if total != tt.want {
			t.Errorf("search %q: expected %d matches, got %d", tt.query, tt.want, total)
		}
	}
}

func TestUpdateAndDeleteMissingRow(t *testing.T) {
	r := NewInMemoryItemRepository()

	_, err := r.Update(context.Background(), models.Item{ID: 42}, false)
	if err != ErrItemNotFound {
		t.Errorf("update: expected ErrItemNotFound, got %v", err)
	}
	if err := r.Delete(context.Background(), 42); err != ErrItemNotFound {
		t.Errorf("delete: expected ErrItemNotFound, got %v", err)
	}
}

func TestIsSortColumn(t *testing.T) {
	for _, ok := range []string{"part_number", "name", "description", "location", "purchase_price", "sale_price", "quantity"} {
		if !IsSortColumn(ok) {
			t.Errorf("%q should be allowed", ok)
		}
	}
	for _, bad := range []string{"", "id", "last_modified", "name; DROP TABLE inventory", "NAME"} {
		if IsSortColumn(bad) {
			t.Errorf("%q should be rejected", bad)
		}
	}
}
