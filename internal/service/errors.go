package service

import "errors"

var (
	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("all fields are required")
	// ErrNotFound means the referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the username is already held by another user.
	ErrConflict = errors.New("duplicate username")
	// ErrHasNotes means a user cannot be deleted while owning notes.
	ErrHasNotes = errors.New("user has assigned notes")
)
