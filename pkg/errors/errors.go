package friendchat_errors

import (
	"errors"
)

// Common errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
	ErrTooLarge           = errors.New("file too large")
)

// Invalid wraps ErrInvalidInput with a reason the caller can show.
func Invalid(reason string) error {
	return &reasonError{reason: reason, kind: ErrInvalidInput}
}

// NotFound wraps ErrNotFound with the name of the missing entity.
func NotFound(entity string) error {
	return &reasonError{reason: entity + " not found", kind: ErrNotFound}
}

type reasonError struct {
	reason string
	kind   error
}

func (e *reasonError) Error() string { return e.reason }

func (e *reasonError) Unwrap() error { return e.kind }
