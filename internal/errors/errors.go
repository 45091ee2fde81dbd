package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses of the fibdev command.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // a delivered term disagreed with the reference
	ExitErrorConfig   = 4
	ExitErrorBusy     = 5   // the session was already held
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError is a bad flag, environment value or argument combination.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// TimeoutError reports a mode that ran past its -timeout limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError names the configuration field that failed a range check.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a staging allocation that exceeded the configured
// limit. It captures the requested and limit sizes for diagnostic purposes.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Limit is the configured staging limit in bytes.
	Limit uint64
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes (limit: %d)", e.Requested, e.Limit)
}

// MismatchError reports a delivered term that disagrees with the reference
// computed independently by the caller.
type MismatchError struct {
	// Index is the position the term was requested for.
	Index int64
	// Got is the decimal text read back from the buffer.
	Got string
	// Want is the expected decimal text.
	Want string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("term %d: delivered %q, expected %q", e.Index, e.Got, e.Want)
}

// WrapError prefixes err with a formatted context message, keeping it in the
// chain. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by one of the application modes to the
// process exit code. A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	var (
		cfgErr     ConfigError
		valErr     ValidationError
		timeoutErr TimeoutError
		mismatch   MismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBusy):
		return ExitErrorBusy
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
