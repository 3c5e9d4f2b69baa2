package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal does not exist or belongs to another owner.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidGoalName is returned when the goal name is empty or too long.
	ErrInvalidGoalName = errors.New("invalid goal name")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidCurrentAmount is returned when the saved amount is negative.
	ErrInvalidCurrentAmount = errors.New("invalid current amount")

	// ErrTargetDateInPast is returned when a new goal targets a date that has passed.
	ErrTargetDateInPast = errors.New("target date is in the past")

	// ErrInvalidGoalCategory is returned when the budget bucket is unknown.
	ErrInvalidGoalCategory = errors.New("invalid goal category")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound         GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalName      GoalErrorCode = "GOL-010002"
	ErrCodeInvalidTargetAmount  GoalErrorCode = "GOL-010003"
	ErrCodeInvalidCurrentAmount GoalErrorCode = "GOL-010004"
	ErrCodeTargetDateInPast     GoalErrorCode = "GOL-010005"
	ErrCodeInvalidGoalCategory  GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields    GoalErrorCode = "GOL-010007"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{Code: code, Message: message, Err: err}
}
