// Package seed loads an initial inventory from a CSV file. It runs once at
// startup and only when the inventory table is empty; it is not part of the
// live mutation path and writes no audit entries.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	models "github.com/tbakken/delelager/internal/models"
	repo "github.com/tbakken/delelager/internal/repo"
)

// Run imports path into items when the table is empty. A populated table
// makes it a no-op.
func Run(ctx context.Context, path string, items repo.ItemRepository, log zerolog.Logger) error {
	count, err := items.Count(ctx)
	if err != nil {
		return fmt.Errorf("count inventory: %w", err)
	}
	if count > 0 {
		log.Debug().Int("rows", count).Msg("inventory not empty, skipping csv seed")
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	rows, skipped, err := parseCSV(file)
	if err != nil {
		return err
	}

	imported := 0
	for _, item := range rows {
		if _, err := items.Create(ctx, item); err != nil {
			return fmt.Errorf("insert seed row: %w", err)
		}
		imported++
	}

	log.Info().Str("file", path).Int("imported", imported).Int("skipped", skipped).Msg("seeded inventory from csv")
	return nil
}

// parseCSV reads header-addressed rows. Expected headers: part_number, name,
// description, location, purchase_price, sale_price, quantity. Rows missing a
// part number and name are skipped and counted.
func parseCSV(file io.Reader) ([]models.Item, int, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var items []models.Item
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("CSV read error: %v", err)
		}

		partNumber := field(record, index, "part_number")
		name := field(record, index, "name")
		if strings.TrimSpace(partNumber) == "" && strings.TrimSpace(name) == "" {
			skipped++
			continue
		}

		description := field(record, index, "description")
		location := field(record, index, "location")
		items = append(items, models.Item{
			PartNumber:    &partNumber,
			Name:          &name,
			Description:   &description,
			Location:      &location,
			PurchasePrice: parseFloat(field(record, index, "purchase_price")),
			SalePrice:     parseFloat(field(record, index, "sale_price")),
			Quantity:      parseInt(field(record, index, "quantity")),
		})
	}
	return items, skipped, nil
}

func field(record []string, index map[string]int, key string) string {
	i, ok := index[key]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
