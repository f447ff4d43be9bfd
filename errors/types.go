package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Filesystem errors
	ErrCodePathNotFound ErrorCode = "PATH_NOT_FOUND"
	ErrCodeStatFailed   ErrorCode = "STAT_FAILED"
	ErrCodeReadFailed   ErrorCode = "READ_FAILED"
	ErrCodeHashFailed   ErrorCode = "HASH_FAILED"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// State errors
	ErrCodeStateInvalid ErrorCode = "STATE_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// FswatchError represents a structured error with context
type FswatchError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *FswatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FswatchError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *FswatchError) WithDetail(key string, value interface{}) *FswatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *FswatchError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new FswatchError
func New(code ErrorCode, message string) *FswatchError {
	return &FswatchError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a FswatchError
func Wrap(err error, code ErrorCode, message string) *FswatchError {
	return &FswatchError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific FswatchError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	fwErr, ok := err.(*FswatchError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return fwErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	fwErr, ok := err.(*FswatchError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return fwErr.Code
}
