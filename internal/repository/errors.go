package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates the write violated a uniqueness or reference constraint.
	ErrConflict = errors.New("repository: conflict")
)
