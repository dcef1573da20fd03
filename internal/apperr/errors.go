package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that the referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists indicates an id collision on create.
var ErrAlreadyExists = errors.New("already exists")

// ErrUnauthorized indicates the requester is neither the admin nor the
// resource's own courier.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidOperation indicates a legal-state violation, e.g. updating an
// order that is no longer open.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrValidation indicates malformed input.
var ErrValidation = errors.New("validation failed")

// ErrCorrupted indicates the durable engine failed to read or write its
// backing file after all retries were exhausted.
var ErrCorrupted = errors.New("storage corrupted")

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func AlreadyExists(format string, args ...any) error {
	return wrap(ErrAlreadyExists, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return wrap(ErrUnauthorized, format, args...)
}

func InvalidOperation(format string, args ...any) error {
	return wrap(ErrInvalidOperation, format, args...)
}

func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

func Corrupted(format string, args ...any) error {
	return wrap(ErrCorrupted, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
