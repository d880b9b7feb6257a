package models

import "errors"

// Sentinel errors returned by stores and services. Callers test with
// errors.Is after unwrapping.
var (
	// ErrNotFound indicates a lookup for an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a concurrent modification was detected while
	// applying a cascade; the whole operation must be retried from scratch.
	ErrConflict = errors.New("conflicting concurrent write")
)
