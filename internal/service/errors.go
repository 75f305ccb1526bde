package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/form"
)

// ErrNotFound is returned when the requested venue or artist does not
// exist.  The repository sentinel stays reachable through errors.Is.
var ErrNotFound = errors.New("not found")

// InvalidDataError reports a form that failed validation.  Nothing was
// written to the store.
type InvalidDataError struct {
	Errors form.Errors
}

// Error returns the concatenated field messages.
func (e *InvalidDataError) Error() string { return e.Errors.Message() }

// PersistenceError wraps a store failure during a read or a mutation.  For
// mutations the transaction has already been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

func notFound(err error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, err)
}

// classify leaves NotFound and InvalidData errors alone and wraps anything
// else as a PersistenceError for op.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var invalid *InvalidDataError
	var persist *PersistenceError
	if errors.Is(err, ErrNotFound) || errors.As(err, &invalid) || errors.As(err, &persist) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
