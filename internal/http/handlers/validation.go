package handlers

import (
	"math"
	"strconv"

	models "github.com/tbakken/delelager/internal/models"
)

// stockCountSentinel in an update body requests "confirm stock count now".
const stockCountSentinel = "now"

// buildItem turns a decoded JSON body into an item candidate, collecting
// field errors. Key presence matters: an absent text field becomes the empty
// string while an explicit null stays null, matching how clients clear a
// field. The returned bool reports whether the body carries the stock count
// sentinel.
func buildItem(body map[string]any) (models.Item, bool, []string) {
	var errs []string
	item := models.Item{}

	item.PartNumber = textField(body, "part_number", &errs)
	item.Name = textField(body, "name", &errs)
	item.Description = textField(body, "description", &errs)
	item.Location = locationField(body, &errs)
	item.PurchasePrice = numberField(body, "purchase_price", &errs)
	item.SalePrice = numberField(body, "sale_price", &errs)
	item.Quantity = integerField(body, "quantity", &errs)

	confirm := false
	if v, ok := body["last_stock_count"].(string); ok && v == stockCountSentinel {
		confirm = true
	}
	return item, confirm, errs
}

func textField(body map[string]any, key string, errs *[]string) *string {
	v, present := body[key]
	if !present {
		empty := ""
		return &empty
	}
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	*errs = append(*errs, "Invalid "+key)
	return nil
}

// locationField never yields null: absent and explicit null both become the
// empty string.
func locationField(body map[string]any, errs *[]string) *string {
	empty := ""
	v, present := body["location"]
	if !present || v == nil {
		return &empty
	}
	if s, ok := v.(string); ok {
		return &s
	}
	*errs = append(*errs, "Invalid location")
	return &empty
}

func numberField(body map[string]any, key string, errs *[]string) float64 {
	v, present := body[key]
	if !present || v == nil {
		return 0
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		*errs = append(*errs, "Invalid "+key)
		return 0
	}
	return f
}

func integerField(body map[string]any, key string, errs *[]string) int {
	v, present := body[key]
	if !present || v == nil {
		return 0
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		*errs = append(*errs, "Invalid "+key)
		return 0
	}
	return int(f)
}

// validateID accepts only whole positive integers; "7.5" and "abc" are both
// rejected rather than truncated.
func validateID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
