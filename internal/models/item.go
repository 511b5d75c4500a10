package models

// TimeFormat is the timestamp layout used across the inventory and audit tables.
const TimeFormat = "2006-01-02 15:04:05"

type Item struct {
	ID             int     `json:"id"`
	PartNumber     *string `json:"part_number"`
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	PurchasePrice  float64 `json:"purchase_price"`
	SalePrice      float64 `json:"sale_price"`
	Quantity       int     `json:"quantity"`
	LastModified   string  `json:"last_modified"`
	LastStockCount *string `json:"last_stock_count"`
}

// Report aggregates the whole inventory for the report endpoint.
// TotalValue is the sum of quantity times purchase price over all rows.
type Report struct {
	TotalValue float64 `json:"totalValue"`
	TotalItems int     `json:"totalItems"`
	Items      []Item  `json:"items"`
}
