package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ConflictError is a unique-constraint violation annotated with the
// colliding field, so callers can report which value was duplicated.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate value for field %q", e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
