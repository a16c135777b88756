package usecase

import "errors"

// Boundary errors for request validation and roster lookups. The resolve
// operations never return them.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
