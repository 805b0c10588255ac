package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `db:"id"`
	SKU       string          `db:"sku"`
	Name      string          `db:"name"`
	Brand     string          `db:"brand"`
	Color     *string         `db:"color"`
	MRP       decimal.Decimal `db:"mrp"`
	Quantity  int             `db:"quantity"`
	CreatedAt time.Time       `db:"created_at"`
}

// NewProduct is a validated catalog row ready for insertion. The selling
// price is checked against MRP during validation and then discarded.
type NewProduct struct {
	SKU      string
	Name     string
	Brand    string
	Color    *string
	MRP      decimal.Decimal
	Quantity int
}

type GetProductParams struct {
	SKU string
}

type ListProductsParams struct {
	Page int
	Size int
}

type SearchProductsParams struct {
	Brand    *string
	Color    *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	Size     int
}

type ListProductsResult struct {
	Products []Product
	Page     int
	Size     int
	Total    int
	Pages    int
}
