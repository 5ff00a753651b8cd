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
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Log input errors
	ErrLogRead       ErrorCode = "LOG_READ"
	ErrLogSource     ErrorCode = "LOG_SOURCE"
	ErrLogDecompress ErrorCode = "LOG_DECOMPRESS"

	// Artifact errors
	ErrArtifactRender  ErrorCode = "ARTIFACT_RENDER"
	ErrArtifactInvalid ErrorCode = "ARTIFACT_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileExists   ErrorCode = "FILE_EXISTS"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// SemtError represents a structured error with code and details
type SemtError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SemtError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SemtError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SemtError) Is(target error) bool {
	var targetErr *SemtError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SemtError with the given code and message
func New(code ErrorCode, message string) *SemtError {
	return &SemtError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SemtError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SemtError {
	return &SemtError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SemtError
func Wrap(err error, code ErrorCode, message string) *SemtError {
	if err == nil {
		return nil
	}
	return &SemtError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SemtError {
	if err == nil {
		return nil
	}
	return &SemtError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SemtError) WithDetail(key string, value interface{}) *SemtError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var semtErr *SemtError
	if errors.As(err, &semtErr) {
		return semtErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SemtError
func GetErrorCode(err error) ErrorCode {
	var semtErr *SemtError
	if errors.As(err, &semtErr) {
		return semtErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SemtError
func GetErrorDetails(err error) map[string]interface{} {
	var semtErr *SemtError
	if errors.As(err, &semtErr) {
		return semtErr.Details
	}
	return nil
}
