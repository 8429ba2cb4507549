package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported model version")
	ErrStringTooLong      = errors.New("string length exceeds maximum")
)

// FieldError reports a failed read or write of a named field, with enough
// context to diagnose a truncated or malformed checkpoint without source
// access.
type FieldError struct {
	Field string // field name (e.g. "logFirst")
	Op    string // "read" or "write"
	Err   error  // underlying cause
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q: %v", e.Op, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FieldError) Unwrap() error {
	return e.Err
}
