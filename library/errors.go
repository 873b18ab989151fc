package library

import "errors"

// Every error returned by a Catalog wraps exactly one of these, so callers
// can branch with errors.Is and still show the wrapped message.
var (
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrLimitExceeded   = errors.New("limit exceeded")
	ErrUnavailable     = errors.New("unavailable")
	ErrAlreadyHeld     = errors.New("already held")
	ErrNotHeld         = errors.New("not held")
)
