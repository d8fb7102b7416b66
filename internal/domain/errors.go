package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a payload is missing required fields.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a unique slug or sku is already taken.
	ErrConflict = errors.New("conflict")
)
