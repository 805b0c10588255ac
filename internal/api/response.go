package api

// PageResponse wraps collection responses with pagination metadata.
// @Description Paginated collection response
type PageResponse struct {
	Items any `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ErrorResponse represents all API error responses.
// @Description Standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the specifics of an API error.
// @Description Error details
type ErrorDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func NewPageResponse(items any, page, size, total, pages int) *PageResponse {
	return &PageResponse{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
		Pages: pages,
	}
}

func NewErrorResponse(httpStatusCode int, err error, message, param string) *ErrorResponse {
	errorType := "api_error"
	if httpStatusCode >= 400 && httpStatusCode < 500 {
		errorType = "invalid_request_error"
	}

	// Server-side error text may carry driver details, so it is not echoed.
	errorCode := "unknown_error"
	if err != nil && httpStatusCode < 500 {
		errorCode = err.Error()
	}

	return &ErrorResponse{
		Error: ErrorDetail{
			Type:    errorType,
			Code:    errorCode,
			Message: message,
			Param:   param,
		},
	}
}
