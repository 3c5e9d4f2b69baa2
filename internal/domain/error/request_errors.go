package error

import "errors"

// Request-level errors raised by middleware.
var (
	// ErrMissingOwnerID is returned when the X-Owner-ID header is absent or malformed.
	ErrMissingOwnerID = errors.New("missing owner id")

	// ErrRateLimited is returned when a caller exceeds its request quota.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RequestErrorCode defines error codes for request errors.
// Format: REQ-XXYYYY where XX is category and YYYY is specific error.
type RequestErrorCode string

const (
	ErrCodeMissingOwnerID RequestErrorCode = "REQ-010001"
	ErrCodeRateLimited    RequestErrorCode = "REQ-020001"
)
