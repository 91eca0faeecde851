package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert collides with an existing row,
	// e.g. adding the same request to a cart twice.
	ErrDuplicate = errors.New("entity already exists")
)
