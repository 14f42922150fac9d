package shared

import "errors"

var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a write collided with a concurrent one; callers may retry.
	ErrConflict = errors.New("conflict")
)
