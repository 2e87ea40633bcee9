package repository

import "errors"

var (
	// ErrNotFound indicates an entity was not located. Owner-scoped
	// lookups return it both when the row is absent and when it belongs
	// to a different user; callers cannot tell the two apart.
	ErrNotFound = errors.New("repository: not found")

	// ErrConflict indicates an insert violated a uniqueness constraint.
	ErrConflict = errors.New("repository: conflict")
)
