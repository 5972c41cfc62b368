package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is outside the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)
