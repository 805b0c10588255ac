package api

import (
	"encoding/json"

	"github.com/Neeraj921721/product-catalog-backend/internal/models"
)

// PageQuery holds the raw paging query parameters.
type PageQuery struct {
	Page string `validate:"omitempty,number"`
	Size string `validate:"omitempty,number"`
}

// SearchQuery holds the raw search query parameters.
type SearchQuery struct {
	Brand    string `validate:"omitempty,max=100"`
	Color    string `validate:"omitempty,max=50"`
	MinPrice string `validate:"omitempty,numeric"`
	MaxPrice string `validate:"omitempty,numeric"`
}

// ProductResponse represents a product resource in API responses.
// @Description Product resource
type ProductResponse struct {
	ID        string      `json:"id"`
	SKU       string      `json:"sku"`
	Name      string      `json:"name"`
	Brand     string      `json:"brand"`
	Color     *string     `json:"color"`
	MRP       json.Number `json:"mrp" swaggertype:"number"`
	Quantity  int         `json:"quantity"`
	CreatedAt string      `json:"created_at"`
}

// UploadResponse reports the result of a CSV upload.
// @Description CSV upload summary
type UploadResponse struct {
	Stored int             `json:"stored"`
	Failed []models.RawRow `json:"failed"`
}

// MessageResponse carries a plain informational message.
type MessageResponse struct {
	Message string `json:"message"`
}
