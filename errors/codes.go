package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline construction errors
const (
	// ErrCodeEmptyCommand indicates a command string that tokenized to nothing.
	ErrCodeEmptyCommand ErrorCode = "EMPTY_COMMAND"
	// ErrCodeSpawnFailure indicates the operating system rejected a spawn request.
	ErrCodeSpawnFailure ErrorCode = "SPAWN_FAILURE"
	// ErrCodeNoOutputStream indicates the upstream stage has no readable output
	// to chain forward or peek at.
	ErrCodeNoOutputStream ErrorCode = "NO_OUTPUT_STREAM"
)

// Execution errors
const (
	// ErrCodeTimeout indicates a process was killed by context cancellation or deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInvalidInput indicates invalid configuration or input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Chain errors are never retryable: the first failure is definitive for the
// whole pipeline and the caller must rebuild from scratch.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
