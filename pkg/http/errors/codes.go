package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeBadRequest       = "bad_request"
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"
	ErrCodeInvalidPage      = "invalid_page"

	// Resource errors
	ErrCodeNotFound         = "not_found"
	ErrCodeQuestionNotFound = "question_not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Business logic errors
	ErrCodeUnprocessable = "unprocessable"

	// Throttling
	ErrCodeRateLimited = "rate_limited"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)
