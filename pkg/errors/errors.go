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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Export errors
	ErrSchemaNotFound ErrorCode = "SCHEMA_NOT_FOUND"
	ErrFieldMissing   ErrorCode = "FIELD_MISSING"
	ErrRender         ErrorCode = "RENDER"

	// Backend errors
	ErrSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	ErrAuth              ErrorCode = "AUTH"
	ErrUpload            ErrorCode = "UPLOAD"

	// Import errors
	ErrRuleInvalid ErrorCode = "RULE_INVALID"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// ViurError represents a structured error with code and details
type ViurError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ViurError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ViurError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ViurError) Is(target error) bool {
	var targetErr *ViurError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ViurError with the given code and message
func New(code ErrorCode, message string) *ViurError {
	return &ViurError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ViurError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ViurError {
	return &ViurError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ViurError
func Wrap(err error, code ErrorCode, message string) *ViurError {
	if err == nil {
		return nil
	}
	return &ViurError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ViurError {
	if err == nil {
		return nil
	}
	return &ViurError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ViurError) WithDetail(key string, value interface{}) *ViurError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ViurError) WithDetails(details map[string]interface{}) *ViurError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var viurErr *ViurError
	if errors.As(err, &viurErr) {
		return viurErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ViurError
func GetErrorCode(err error) ErrorCode {
	var viurErr *ViurError
	if errors.As(err, &viurErr) {
		return viurErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ViurError
func GetErrorDetails(err error) map[string]interface{} {
	var viurErr *ViurError
	if errors.As(err, &viurErr) {
		return viurErr.Details
	}
	return nil
}
