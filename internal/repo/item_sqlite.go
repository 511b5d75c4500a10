package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/tbakken/delelager/internal/models"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code serves both the plain and the transactional path.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteItemRepository struct {
	q querier
}

func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{q: db}
}

const itemColumns = `id, part_number, name, description, location, purchase_price, sale_price, quantity, last_modified, last_stock_count`

func (r *SQLiteItemRepository) List(ctx context.Context, f ItemFilter) ([]models.Item, int, error) {
	if !IsSortColumn(f.SortBy) {
		return nil, 0, fmt.Errorf("sort column %q not allowed", f.SortBy)
	}
	order := "ASC"
	if f.SortOrder == "DESC" {
		order = "DESC"
	}

	where := ""
	args := []any{}
	if f.SearchQuery != "" {
		where = ` WHERE part_number LIKE ? OR name LIKE ? OR description LIKE ? OR location LIKE ?`
		pattern := "%" + f.SearchQuery + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.ItemsPerPage
	query := fmt.Sprintf(`SELECT %s FROM inventory%s ORDER BY %s %s LIMIT ? OFFSET ?`,
		itemColumns, where, f.SortBy, order)
	args = append(args, f.ItemsPerPage, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *SQLiteItemRepository) GetByID(ctx context.Context, id int) (models.Item, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return item, err
}

func (r *SQLiteItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count)
	return count, err
}

func (r *SQLiteItemRepository) Report(ctx context.Context) (models.Report, error) {
	var report models.Report
	err := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity * purchase_price), 0), COALESCE(SUM(quantity), 0)
		FROM inventory
	`).Scan(&report.TotalValue, &report.TotalItems)
	if err != nil {
		return models.Report{}, err
	}

	rows, err := r.q.QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory ORDER BY location, part_number`)
	if err != nil {
		return models.Report{}, err
	}
	defer rows.Close()

	report.Items, err = scanItems(rows)
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (r *SQLiteItemRepository) Create(ctx context.Context, item models.Item) (models.Item, error) {
	item.LastModified = time.Now().Format(models.TimeFormat)
	item.LastStockCount = nil

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO inventory (part_number, name, description, location, purchase_price, sale_price, quantity, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.PartNumber, item.Name, item.Description, item.Location,
		item.PurchasePrice, item.SalePrice, item.Quantity, item.LastModified,
	)
	if err != nil {
		return models.Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Item{}, err
	}
	item.ID = int(id)
	return item, nil
}

func (r *SQLiteItemRepository) Update(ctx context.Context, item models.Item, confirmStockCount bool) (models.Item, error) {
	now := time.Now().Format(models.TimeFormat)

	var res sql.Result
	var err error
	if confirmStockCount {
		res, err = r.q.ExecContext(ctx, `
			UPDATE inventory
			SET part_number = ?, name = ?, description = ?, location = ?,
			    purchase_price = ?, sale_price = ?, quantity = ?,
			    last_modified = ?, last_stock_count = ?
			WHERE id = ?`,
			item.PartNumber, item.Name, item.Description, item.Location,
			item.PurchasePrice, item.SalePrice, item.Quantity, now, now, item.ID,
		)
	} else {
		res, err = r.q.ExecContext(ctx, `
			UPDATE inventory
			SET part_number = ?, name = ?, description = ?, location = ?,
			    purchase_price = ?, sale_price = ?, quantity = ?,
			    last_modified = ?
			WHERE id = ?`,
			item.PartNumber, item.Name, item.Description, item.Location,
			item.PurchasePrice, item.SalePrice, item.Quantity, now, item.ID,
		)
	}
	if err != nil {
		return models.Item{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Item{}, err
	}
	if affected == 0 {
		return models.Item{}, ErrItemNotFound
	}
	return r.GetByID(ctx, item.ID)
}

func (r *SQLiteItemRepository) Delete(ctx context.Context, id int) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	var partNumber, name, description, location, lastModified, lastStockCount sql.NullString
	err := row.Scan(&item.ID, &partNumber, &name, &description, &location,
		&item.PurchasePrice, &item.SalePrice, &item.Quantity, &lastModified, &lastStockCount)
	if err != nil {
		return models.Item{}, err
	}
	item.PartNumber = nullableString(partNumber)
	item.Name = nullableString(name)
	item.Description = nullableString(description)
	item.Location = nullableString(location)
	item.LastModified = lastModified.String
	item.LastStockCount = nullableString(lastStockCount)
	return item, nil
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
