package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between library variants.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorFlush    = 5   // Indicates standard output could not be flushed.
	ExitErrorLoad     = 6   // Indicates a library could not be loaded.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// FlushError reports that buffered output could not be pushed to its
// destination. The host treats it as unrecoverable: the process prints a
// diagnostic and terminates.
type FlushError struct {
	// Site names the print site that attempted the flush ("host", "printfib").
	Site string
	// Cause is the error returned by the underlying writer.
	Cause error
}

// Error returns a formatted message describing the flush failure.
func (e *FlushError) Error() string {
	return fmt.Sprintf("unable to flush stdout (%s): %v", e.Site, e.Cause)
}

// Unwrap returns the underlying writer error.
func (e *FlushError) Unwrap() error { return e.Cause }

// LoadError reports a failure to resolve a library or one of its symbols.
type LoadError struct {
	// Backend is the loader backend that was used ("builtin", "plugin", "script").
	Backend string
	// Path is the library location, empty for builtin variants.
	Path string
	// Symbol is the symbol that could not be resolved, empty when the
	// library itself failed to open.
	Symbol string
	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted message describing the load failure.
func (e *LoadError) Error() string {
	target := e.Path
	if target == "" {
		target = e.Backend
	}
	if e.Symbol != "" {
		return fmt.Sprintf("load %s library %q: symbol %s: %v", e.Backend, target, e.Symbol, e.Cause)
	}
	return fmt.Sprintf("load %s library %q: %v", e.Backend, target, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field with a formatted
// message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// ErrMismatch is returned when two library variants disagree on a value.
var ErrMismatch = errors.New("library variants returned different values")

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		flushErr   *FlushError
		loadErr    *LoadError
		configErr  ConfigError
		validErr   ValidationError
		timeoutErr TimeoutError
	)
	switch {
	case errors.As(err, &flushErr):
		return ExitErrorFlush
	case errors.As(err, &loadErr):
		return ExitErrorLoad
	case errors.As(err, &configErr), errors.As(err, &validErr):
		return ExitErrorConfig
	case errors.Is(err, ErrMismatch):
		return ExitErrorMismatch
	case errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case IsContextError(err):
		if errors.Is(err, context.DeadlineExceeded) {
			return ExitErrorTimeout
		}
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}

// HandleError writes a diagnostic for err to out and returns the matching
// exit code. A nil error writes nothing.
func HandleError(err error, out io.Writer) int {
	code := ExitCode(err)
	if err == nil {
		return code
	}
	switch code {
	case ExitErrorFlush:
		fmt.Fprintf(out, "fatal: %v\n", err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled by user.\n")
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). %v\n", err)
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return code
}
