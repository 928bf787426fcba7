// Package apperr defines the error taxonomy shared by all usecases.
//
// Handlers map these onto HTTP statuses with errors.Is / errors.As; the
// usecases never touch HTTP concepts directly.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no owner identity was available for a
	// mutating operation. Always fatal to the requested operation.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound means no record matched the given id and owner.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was malformed (missing title, negative
	// minutes, bad timestamp). Never silently coerced.
	ErrValidation = errors.New("validation failed")
)

// PersistenceError wraps a primary-store failure. The store's own message
// is preserved so callers can surface it verbatim.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError, passing nil through.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// MirrorError records a best-effort external-calendar failure. It is never
// returned as an operation failure, only logged alongside a successful
// primary result.
type MirrorError struct {
	Op  string
	Err error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("mirror %s: %v", e.Op, e.Err)
}

func (e *MirrorError) Unwrap() error { return e.Err }

// Validation builds a formatted error wrapping ErrValidation.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
