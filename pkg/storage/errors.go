package storage

import "errors"

// Sentinel errors for journal operations.
var (
	// ErrNotFound is returned when a turn does not exist.
	ErrNotFound = errors.New("turn not found")

	// ErrConflict is returned when a turn with the given ID already exists.
	ErrConflict = errors.New("turn already exists")
)
