package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type carried through a pipeline chain.
// It is always passed around as a value, never raised: a failed builder
// holds its AppError and every later chaining call propagates it unchanged.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf returns the ErrorCode carried by err, or empty when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given ErrorCode anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// --- Common Error Constructors ---

// EmptyCommand creates a new AppError for a command string with no tokens.
func EmptyCommand() *AppError {
	return &AppError{
		Code: ErrCodeEmptyCommand, Message: "No command supplied.",
		Retryable: false,
	}
}

// SpawnFailure creates a new AppError for a rejected spawn request.
func SpawnFailure(binary string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSpawnFailure, Message: fmt.Sprintf("Failed to spawn %q.", binary),
		Retryable: false,
		Details:   map[string]any{"binary": binary},
		Cause:     cause,
	}
}

// NoOutputStream creates a new AppError for a stage whose output stream is
// missing or was already taken by a downstream stage.
func NoOutputStream() *AppError {
	return &AppError{
		Code: ErrCodeNoOutputStream, Message: "No output stream available.",
		Retryable: false,
	}
}

// Timeout creates a new AppError for a process killed by context cancellation.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The operation took too long and was killed.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// Validation creates a new AppError for invalid configuration or input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
