package dto

// ErrorResponse is the body of every failed request.
// Successful requests return the resource itself.
type ErrorResponse struct {
	Message   string              `json:"message"`
	Code      string              `json:"code,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Message: message,
		Code:    code,
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Code:      code,
		RequestID: requestID,
	}
}

// ValidationDetail is one failed field check
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse creates a 400 body grouping messages by field
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	errs := make(map[string][]string, len(details))
	for _, d := range details {
		errs[d.Field] = append(errs[d.Field], d.Message)
	}
	return ErrorResponse{
		Message:   message,
		Code:      ErrCodeValidation,
		RequestID: requestID,
		Errors:    errs,
	}
}

// IDRequest represents a request with a numeric ID path parameter
type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
