package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no active article has the requested id. Deleted
	// articles are reported the same way as ones that never existed.
	ErrNotFound = errors.New("article not found")

	// ErrInvalidInput is the parent of every ValidationError.
	ErrInvalidInput = errors.New("invalid article input")
)

// ValidationError names the offending input field. Message is written for
// API callers and is returned to them verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
