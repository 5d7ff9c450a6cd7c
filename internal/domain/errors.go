package domain

import "errors"

// Sentinel errors shared across services. Handlers translate these into HTTP
// statuses; anything else is treated as an internal store failure.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("you do not own this resource")
	ErrInvalidParent = errors.New("parent comment missing or belongs to a different post")
	ErrAlreadyExists = errors.New("resource already exists")
)
