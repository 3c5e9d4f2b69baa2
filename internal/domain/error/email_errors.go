package error

import "errors"

// Report email errors.
var (
	ErrEmailQueueFailed = errors.New("failed to queue email")
	ErrInvalidRecipient = errors.New("invalid recipient email")
	ErrInvalidTemplate  = errors.New("invalid email template")
)

// EmailErrorCode identifies report email failures.
// Format: RPT-XXYYYY; 01 covers queueing, 02 delivery and 03 rendering.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "RPT-010001"
	ErrCodeInvalidRecipient EmailErrorCode = "RPT-010002"

	// Permanent failures are not retried by the worker.
	ErrCodePermanentEmailFailure EmailErrorCode = "RPT-020001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "RPT-020002"

	ErrCodeInvalidTemplate      EmailErrorCode = "RPT-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "RPT-030002"
)

// EmailError carries the code the report controller and the worker branch on.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error { return e.Err }

func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
