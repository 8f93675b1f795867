package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the users email uniqueness
	// constraint is violated.
	ErrDuplicateEmail = errors.New("email already registered")
)
