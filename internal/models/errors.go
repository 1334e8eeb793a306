package models

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes with errors.Is, so services should wrap them with %w.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrValidation      = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
)
