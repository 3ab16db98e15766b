package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeFdrDisabled       = "FDR_DISABLED"
	CodeModerationMissing = "MODERATION_MISSING"
	CodeMissingColumn     = "MISSING_COLUMN"
	CodeTableMissing      = "TABLE_MISSING"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// FdrDisabled signals that no permutation data is attached to the target,
// so permutation testing was disabled at construction time.
func FdrDisabled() *AppError {
	return New(CodeFdrDisabled, "FDR permutation testing is disabled: no permutations attached")
}

// ModerationMissing signals a moderated-theta recomputation without a
// previously configured moderation covariate.
func ModerationMissing() *AppError {
	return New(CodeModerationMissing, "moderated theta requested but moderation was never configured")
}

// MissingColumn signals a required upstream statistic column that has not
// been computed yet.
func MissingColumn(column string) *AppError {
	return New(CodeMissingColumn, fmt.Sprintf("%s column missing: compute it before selecting a cutoff", column))
}

// TableMissing signals cutoff selection on a target without a built FDR table.
func TableMissing() *AppError {
	return New(CodeTableMissing, "no FDR table present: run the curve builder first")
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
