// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// device, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method to support errors.Is() and errors.As().
//
// The device error kinds (busy session, staging allocation failure, rejected
// destination buffer) are exposed as sentinels so callers can test them with
// errors.Is regardless of how many layers wrapped them.
package apperrors
