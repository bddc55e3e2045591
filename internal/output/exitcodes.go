// Package output provides structured output and error handling for the bosun CLI.
package output

import "errors"

// Exit codes:
// 0 = Success (all checks passed)
// 1 = Check failure or user error (aborts the commit)
// 2 = System error (git missing, I/O failure)
// 3 = Conflict (hook or config state mismatch)
const (
	ExitSuccess     = 0
	ExitCheckFailed = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, missing config values.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitCheckFailed,
		Message: message,
	}
}

// NewCheckError creates an error for a failing check command (exit code 1).
// Git treats any nonzero hook exit as "abort the commit", so failing checks
// share the code with user errors.
func NewCheckError(message string) *ExitError {
	return &ExitError{
		Code:    ExitCheckFailed,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: git operation failures, I/O errors while touching the hook file.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewConflictError creates an error for conflict situations (exit code 3).
// Use for: config file already exists, unexpected hook state.
func NewConflictError(message string) *ExitError {
	return &ExitError{
		Code:    ExitConflict,
		Message: message,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitCheckFailed for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to the generic failure code for untyped errors
	return ExitCheckFailed
}
