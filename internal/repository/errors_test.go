package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
)

func TestStorageErr(t *testing.T) {
	t.Run("deadline becomes timeout", func(t *testing.T) {
		err := storageErr("list products", fmt.Errorf("query: %w", context.DeadlineExceeded))

		var timeoutErr *apperrors.TimeoutError
		assert.ErrorAs(t, err, &timeoutErr)
		assert.Equal(t, "list products", timeoutErr.Operation)
	})

	t.Run("other errors become storage errors", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := storageErr("ping", cause)

		var storage *apperrors.StorageError
		assert.ErrorAs(t, err, &storage)
		assert.ErrorIs(t, err, cause)
	})
}
