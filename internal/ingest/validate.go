package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Neeraj921721/product-catalog-backend/internal/models"
)

// maxMRP is the largest value a NUMERIC(10,2) column holds.
var maxMRP = decimal.RequireFromString("99999999.99")

var validate = validator.New()

// RejectionError explains why a row was not accepted.
type RejectionError struct {
	Field  string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func reject(field, reason string) *RejectionError {
	return &RejectionError{Field: field, Reason: reason}
}

// identity holds the text fields checked after trimming.
type identity struct {
	SKU   string `validate:"required,max=100"`
	Name  string `validate:"required,max=255"`
	Brand string `validate:"required,max=100"`
	Color string `validate:"max=50"`
}

// ValidateRow checks a raw CSV row and normalizes it into a product. Rules
// apply in order and the first failure is returned as a *RejectionError:
// numeric parsing, price not above MRP, non-negative quantity, then the
// required text fields.
func ValidateRow(raw models.RawRow) (models.NewProduct, error) {
	mrp, err := parseAmount(raw.MRP)
	if err != nil {
		return models.NewProduct{}, reject("mrp", err.Error())
	}
	if mrp.GreaterThan(maxMRP) {
		return models.NewProduct{}, reject("mrp", "exceeds "+maxMRP.String())
	}

	price, err := parseAmount(raw.Price)
	if err != nil {
		return models.NewProduct{}, reject("price", err.Error())
	}

	quantity, err := parseQuantity(raw.Quantity)
	if err != nil {
		return models.NewProduct{}, reject("quantity", err.Error())
	}

	if price.GreaterThan(mrp) {
		return models.NewProduct{}, reject("price", "must not exceed mrp")
	}

	if quantity < 0 {
		return models.NewProduct{}, reject("quantity", "must not be negative")
	}

	id := identity{
		SKU:   trimmed(raw.SKU),
		Name:  trimmed(raw.Name),
		Brand: trimmed(raw.Brand),
		Color: trimmed(raw.Color),
	}
	if err := validate.Struct(id); err != nil {
		return models.NewProduct{}, rejectionFromValidator(err)
	}

	var color *string
	if id.Color != "" {
		color = &id.Color
	}

	return models.NewProduct{
		SKU:      id.SKU,
		Name:     id.Name,
		Brand:    id.Brand,
		Color:    color,
		MRP:      mrp.Round(2),
		Quantity: quantity,
	}, nil
}

func parseAmount(s *string) (decimal.Decimal, error) {
	if s == nil {
		return decimal.Decimal{}, fmt.Errorf("is missing")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("is not a number")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("must not be negative")
	}
	return d, nil
}

func parseQuantity(s *string) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("is missing")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("is not an integer")
	}
	return int(n), nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func rejectionFromValidator(err error) *RejectionError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return reject("row", err.Error())
	}

	fieldError := validationErrors[0]
	field := strings.ToLower(fieldError.Field())
	switch fieldError.Tag() {
	case "required":
		return reject(field, "is required")
	case "max":
		return reject(field, "must be at most "+fieldError.Param()+" characters")
	default:
		return reject(field, "is invalid")
	}
}
