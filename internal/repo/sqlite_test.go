package repo_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tbakken/delelager/internal/db"
	models "github.com/tbakken/delelager/internal/models"
	repo "github.com/tbakken/delelager/internal/repo"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func strPtr(s string) *string { return &s }

func TestSQLiteCreateGetDelete(t *testing.T) {
	database := newTestDB(t)
	items := repo.NewSQLiteItemRepository(database)
	ctx := context.Background()

	created, err := items.Create(ctx, models.Item{
		PartNumber:    strPtr("A1"),
		Name:          strPtr("Widget"),
		Description:   nil,
		Location:      strPtr("A3"),
		PurchasePrice: 2.5,
		SalePrice:     5,
		Quantity:      10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("create must assign an id")
	}
	if created.LastModified == "" {
		t.Error("create must stamp last_modified")
	}

	got, err := items.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if *got.PartNumber != "A1" || got.Quantity != 10 {
		t.Errorf("row does not round-trip: %+v", got)
	}
	if got.Description != nil {
		t.Errorf("null description must stay null, got %v", *got.Description)
	}
	if got.LastStockCount != nil {
		t.Error("fresh row must have null last_stock_count")
	}

	if err := items.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := items.GetByID(ctx, created.ID); !errors.Is(err, repo.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound after delete, got %v", err)
	}
	if err := items.Delete(ctx, created.ID); !errors.Is(err, repo.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound on double delete, got %v", err)
	}
}

func TestSQLiteUpdateStockCount(t *testing.T) {
	database := newTestDB(t)
	items := repo.NewSQLiteItemRepository(database)
	ctx := context.Background()

	created, err := items.Create(ctx, models.Item{PartNumber: strPtr("A1"), Name: strPtr("Widget"), Quantity: 10})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Quantity = 7
	updated, err := items.Update(ctx, created, false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", updated.Quantity)
	}
	if updated.LastStockCount != nil {
		t.Error("plain update must not stamp last_stock_count")
	}

	confirmed, err := items.Update(ctx, created, true)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if confirmed.LastStockCount == nil {
		t.Error("confirming update must stamp last_stock_count")
	}

	missing := created
	missing.ID = 999
	if _, err := items.Update(ctx, missing, false); !errors.Is(err, repo.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSQLiteListSearchAndSort(t *testing.T) {
	database := newTestDB(t)
	items := repo.NewSQLiteItemRepository(database)
	ctx := context.Background()

	rows := []struct {
		pn, name string
		qty      int
	}{
		{"AX-7", "Bolt", 3},
		{"BZ-1", "Nut", 9},
		{"CA-2", "Washer", 6},
	}
	for _, row := range rows {
		if _, err := items.Create(ctx, models.Item{PartNumber: strPtr(row.pn), Name: strPtr(row.name), Quantity: row.qty}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, total, err := items.List(ctx, repo.ItemFilter{Page: 1, ItemsPerPage: 25, SortBy: "quantity", SortOrder: "DESC"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(got) != 3 {
		t.Fatalf("expected 3 rows, got total=%d len=%d", total, len(got))
	}
	if *got[0].PartNumber != "BZ-1" {
		t.Errorf("expected BZ-1 first by quantity desc, got %s", *got[0].PartNumber)
	}

	// Case-insensitive substring search.
	_, total, err = items.List(ctx, repo.ItemFilter{Page: 1, ItemsPerPage: 25, SearchQuery: "bolt", SortBy: "part_number", SortOrder: "ASC"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 match for %q, got %d", "bolt", total)
	}

	// Unvetted sort columns never reach the query.
	if _, _, err := items.List(ctx, repo.ItemFilter{Page: 1, ItemsPerPage: 25, SortBy: "id; DROP TABLE inventory"}); err == nil {
		t.Error("expected an error for a non-allowlisted sort column")
	}
}

func TestSQLiteTxRollsBackAuditAndWrite(t *testing.T) {
	database := newTestDB(t)
	items := repo.NewSQLiteItemRepository(database)
	tx := repo.NewSQLiteTxRunner(database)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Run(ctx, func(txItems repo.ItemRepository, txAudit repo.AuditRepository) error {
		if _, err := txItems.Create(ctx, models.Item{PartNumber: strPtr("A1"), Name: strPtr("Widget")}); err != nil {
			return err
		}
		if _, err := txAudit.Append(ctx, models.AuditEntry{Username: "alice", Action: models.ActionCreate}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	count, err := items.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("row write must roll back, found %d rows", count)
	}
	audit := repo.NewSQLiteAuditRepository(database)
	_, total, err := audit.List(ctx, 1, 25)
	if err != nil {
		t.Fatalf("audit list failed: %v", err)
	}
	if total != 0 {
		t.Errorf("audit append must roll back, found %d entries", total)
	}
}

func TestSQLiteAuditNewestFirst(t *testing.T) {
	database := newTestDB(t)
	audit := repo.NewSQLiteAuditRepository(database)
	ctx := context.Background()

	for _, action := range []string{models.ActionCreate, models.ActionUpdate, models.ActionDelete} {
		if _, err := audit.Append(ctx, models.AuditEntry{Username: "alice", Action: action}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	entries, total, err := audit.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(entries) != 2 || entries[0].Action != models.ActionDelete || entries[1].Action != models.ActionUpdate {
		t.Errorf("expected newest first [DELETE UPDATE], got %+v", entries)
	}
}
