package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nhalm/canonlog"
)

func renderJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func renderError(w http.ResponseWriter, r *http.Request, statusCode int, err error, message, param string) {
	canonlog.AddRequestError(r.Context(), err)
	sanitizedMessage := sanitizeErrorMessage(message, statusCode)
	renderJSON(w, statusCode, NewErrorResponse(statusCode, err, sanitizedMessage, param))
}

func sanitizeErrorMessage(message string, statusCode int) string {
	lowerMsg := strings.ToLower(message)

	if strings.Contains(lowerMsg, "sql") ||
		strings.Contains(lowerMsg, "database") ||
		strings.Contains(lowerMsg, "postgres") {
		if statusCode >= 500 {
			return "An internal error occurred"
		}
		return "Invalid request"
	}

	if statusCode >= 500 {
		return "An internal error occurred"
	}

	return message
}

func Success(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusOK, data)
}

func Paginated(w http.ResponseWriter, items any, page, size, total, pages int) {
	renderJSON(w, http.StatusOK, NewPageResponse(items, page, size, total, pages))
}

func BadRequest(w http.ResponseWriter, r *http.Request, err error, message, param string) {
	renderError(w, r, http.StatusBadRequest, err, message, param)
}

func NotFound(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusNotFound, err, message, "")
}

func RequestTooLarge(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusRequestEntityTooLarge, err, message, "")
}

func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusInternalServerError, err, message, "")
}

func ServiceUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Retry-After", "5")
	renderUnsanitized(w, r, http.StatusServiceUnavailable, err, "service unavailable")
}

func GatewayTimeout(w http.ResponseWriter, r *http.Request, err error) {
	renderUnsanitized(w, r, http.StatusGatewayTimeout, err, "request timed out")
}

// renderUnsanitized is for fixed 5xx messages that carry no error text.
func renderUnsanitized(w http.ResponseWriter, r *http.Request, statusCode int, err error, message string) {
	canonlog.AddRequestError(r.Context(), err)
	renderJSON(w, statusCode, NewErrorResponse(statusCode, err, message, ""))
}
