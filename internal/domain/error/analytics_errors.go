// Package error defines domain-specific errors for the finance dashboard backend.
package error

import "errors"

// Analytics domain errors.
var (
	// ErrInvalidAnalyticsPayload is returned when a request body cannot be read as accounts and transactions.
	ErrInvalidAnalyticsPayload = errors.New("invalid analytics payload")

	// ErrTooManyRecords is returned when a request carries more records than the configured limit.
	ErrTooManyRecords = errors.New("too many records in request")

	// ErrInvalidRegion is returned when the region is not AU or US.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidAsOf is returned when the reference instant cannot be parsed.
	ErrInvalidAsOf = errors.New("invalid as_of timestamp")

	// ErrInvalidRuleSet is returned when a classification rule file is malformed.
	ErrInvalidRuleSet = errors.New("invalid classification rule set")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAnalyticsPayload AnalyticsErrorCode = "ANL-010001"
	ErrCodeTooManyRecords          AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidRegion           AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidAsOf             AnalyticsErrorCode = "ANL-010004"

	// Configuration errors (02XXXX)
	ErrCodeInvalidRuleSet AnalyticsErrorCode = "ANL-020001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
