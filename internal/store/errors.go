package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")
	ErrInvalidStatus  = errors.New("status not in catalog")
	// ErrTransitionNotAllowed is only returned when the optional
	// forward-only policy is enabled.
	ErrTransitionNotAllowed = errors.New("transition not allowed")
)
