package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is a parsed CSV data line. Err is set when the line itself was
// malformed; Raw then carries whatever fields could be recovered.
type Row struct {
	Line int
	Raw  models.RawRow
	Err  error
}

// column assigns one CSV cell to its RawRow field.
type column func(r *models.RawRow, value *string)

var columns = map[string]column{
	"sku":      func(r *models.RawRow, v *string) { r.SKU = v },
	"name":     func(r *models.RawRow, v *string) { r.Name = v },
	"brand":    func(r *models.RawRow, v *string) { r.Brand = v },
	"color":    func(r *models.RawRow, v *string) { r.Color = v },
	"mrp":      func(r *models.RawRow, v *string) { r.MRP = v },
	"price":    func(r *models.RawRow, v *string) { r.Price = v },
	"quantity": func(r *models.RawRow, v *string) { r.Quantity = v },
}

// ReadRows decodes an uploaded CSV document. The first record is the header;
// every following record becomes one Row. Invalid UTF-8 fails the whole
// document with a *apperrors.DecodeError, but structural problems on a line
// only mark that Row.
func ReadRows(data []byte) ([]Row, error) {
	if !utf8.Valid(data) {
		return nil, apperrors.NewDecodeError(invalidUTF8Offset(data))
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewValidationError("file", fmt.Sprintf("unreadable CSV header: %v", err))
	}

	assign := make([]column, len(header))
	for i, name := range header {
		assign[i] = columns[strings.ToLower(strings.TrimSpace(name))]
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		row := Row{Raw: toRawRow(assign, record)}
		if err != nil {
			row.Err = err
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				row.Line = parseErr.StartLine
			}
		} else {
			row.Line, _ = reader.FieldPos(0)
			if len(record) != len(header) {
				row.Err = fmt.Errorf("line %d: expected %d fields, got %d", row.Line, len(header), len(record))
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func toRawRow(assign []column, record []string) models.RawRow {
	var raw models.RawRow
	for i, value := range record {
		if i >= len(assign) || assign[i] == nil {
			continue
		}
		v := value
		assign[i](&raw, &v)
	}
	return raw
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
