package api

import (
	"errors"
	"net/http"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
)

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var unsupportedErr *apperrors.UnsupportedFormatError
	if errors.As(err, &unsupportedErr) {
		BadRequest(w, r, err, err.Error(), "file")
		return
	}

	var decodeErr *apperrors.DecodeError
	if errors.As(err, &decodeErr) {
		BadRequest(w, r, err, err.Error(), "file")
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		BadRequest(w, r, err, err.Error(), validationErr.Field)
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		NotFound(w, r, err, err.Error())
		return
	}

	var timeoutErr *apperrors.TimeoutError
	if errors.As(err, &timeoutErr) {
		GatewayTimeout(w, r, err)
		return
	}

	var unavailableErr *apperrors.ServiceUnavailableError
	if errors.As(err, &unavailableErr) {
		ServiceUnavailable(w, r, err)
		return
	}

	InternalError(w, r, err, "internal server error")
}
