package repository

import (
	"context"
	"errors"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
)

// ErrNotFound is returned when a requested resource doesn't exist.
// This abstracts the driver's error so service layer doesn't
// depend on pgx internals.
var ErrNotFound = errors.New("not found")

// storageErr classifies a driver failure. Deadline expiry becomes a
// TimeoutError; everything else is a StorageError.
func storageErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(op)
	}
	return apperrors.NewStorageError(op, err)
}
