// Package ingest implements bulk product upload from CSV: decoding, per-row
// validation and batched persistence.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nhalm/canonlog"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
)

// BatchInserter persists validated products in a single transaction,
// skipping SKUs that already exist, and reports how many rows were new.
type BatchInserter interface {
	InsertBatch(ctx context.Context, products []models.NewProduct) (int, error)
}

type Pipeline struct {
	store BatchInserter
}

func NewPipeline(store BatchInserter) *Pipeline {
	return &Pipeline{store: store}
}

// IsCSVFilename reports whether name carries a .csv extension.
func IsCSVFilename(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// Ingest validates every row of a CSV upload and stores the valid ones.
// Rejected rows are returned unchanged in the summary; they never fail the
// request. Storage errors abort the whole batch.
func (p *Pipeline) Ingest(ctx context.Context, filename string, data []byte) (*models.IngestSummary, error) {
	if !IsCSVFilename(filename) {
		return nil, apperrors.NewUnsupportedFormatError(filename)
	}

	rows, err := ReadRows(data)
	if err != nil {
		return nil, err
	}

	valid := make([]models.NewProduct, 0, len(rows))
	failed := make([]models.RawRow, 0)
	for _, row := range rows {
		if row.Err != nil {
			failed = append(failed, row.Raw)
			continue
		}

		product, err := ValidateRow(row.Raw)
		if err != nil {
			failed = append(failed, row.Raw)
			continue
		}
		valid = append(valid, product)
	}

	inserted := 0
	if len(valid) > 0 {
		inserted, err = p.store.InsertBatch(ctx, valid)
		if err != nil {
			return nil, fmt.Errorf("store products: %w", err)
		}
	}

	canonlog.AddRequestFields(ctx, map[string]any{
		"upload_rows":     len(rows),
		"upload_valid":    len(valid),
		"upload_inserted": inserted,
		"upload_skipped":  len(valid) - inserted,
		"upload_failed":   len(failed),
	})

	return &models.IngestSummary{
		Stored: len(valid),
		Failed: failed,
	}, nil
}
