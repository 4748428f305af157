package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Precondition errors
	ErrNotInstalled     ErrorCode = "NOT_INSTALLED"
	ErrToolMissing      ErrorCode = "TOOL_MISSING"
	ErrSymlinkConflict  ErrorCode = "SYMLINK_CONFLICT"
	ErrUnsupportedShell ErrorCode = "UNSUPPORTED_SHELL"

	// Execution errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrStepFailed    ErrorCode = "STEP_FAILED"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// DotstrapError represents a structured error with code and details
type DotstrapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotstrapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotstrapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotstrapError) Is(target error) bool {
	var targetErr *DotstrapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotstrapError with the given code and message
func New(code ErrorCode, message string) *DotstrapError {
	return &DotstrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotstrapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotstrapError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a DotstrapError.
// A nil error stays nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &DotstrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *DotstrapError) WithDetail(key string, value interface{}) *DotstrapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var dErr *DotstrapError
		if !errors.As(err, &dErr) {
			return false
		}
		if dErr.Code == code {
			return true
		}
		err = dErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a DotstrapError
func GetErrorCode(err error) ErrorCode {
	var dErr *DotstrapError
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotstrapError
func GetErrorDetails(err error) map[string]interface{} {
	var dErr *DotstrapError
	if errors.As(err, &dErr) {
		return dErr.Details
	}
	return nil
}
