package error

import "errors"

// Insight (assistant) domain errors.
var (
	// ErrInvalidQuestion is returned when the question is empty or too long.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrAssistantNotConfigured is returned when no LLM API key is configured.
	ErrAssistantNotConfigured = errors.New("assistant is not configured")

	// ErrAssistantRateLimited is returned when the LLM provider throttles the request.
	ErrAssistantRateLimited = errors.New("assistant rate limited")

	// ErrAssistantUnavailable is returned when the LLM provider cannot be reached.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// ErrAssistantEmptyAnswer is returned when the provider answers with no text.
	ErrAssistantEmptyAnswer = errors.New("assistant returned an empty answer")
)

// InsightErrorCode defines error codes for assistant errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidQuestion InsightErrorCode = "INS-010001"

	// Provider errors (02XXXX)
	ErrCodeAssistantNotConfigured InsightErrorCode = "INS-020001"
	ErrCodeAssistantRateLimited   InsightErrorCode = "INS-020002"
	ErrCodeAssistantAuthFailed    InsightErrorCode = "INS-020003"
	ErrCodeAssistantTimeout       InsightErrorCode = "INS-020004"
	ErrCodeAssistantUnavailable   InsightErrorCode = "INS-020005"
	ErrCodeAssistantEmptyAnswer   InsightErrorCode = "INS-020006"
	ErrCodeAssistantUnknown       InsightErrorCode = "INS-020099"
)

// InsightError represents an assistant error with code and message.
type InsightError struct {
	Code      InsightErrorCode
	Message   string
	Retryable bool
	Err       error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, retryable bool, err error) *InsightError {
	return &InsightError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Err:       err,
	}
}
