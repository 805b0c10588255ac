package models

// RawRow is one CSV data line as uploaded. A nil field means the column was
// missing from the header or from the line itself.
type RawRow struct {
	SKU      *string `json:"sku"`
	Name     *string `json:"name"`
	Brand    *string `json:"brand"`
	Color    *string `json:"color"`
	MRP      *string `json:"mrp"`
	Price    *string `json:"price"`
	Quantity *string `json:"quantity"`
}

// IngestSummary reports the outcome of one CSV upload.
//
// Stored counts rows that passed validation and were sent to the store,
// including rows skipped because their SKU already existed.
type IngestSummary struct {
	Stored int      `json:"stored"`
	Failed []RawRow `json:"failed"`
}
