package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDeleteFailed       = errors.New("delete failed")
	ErrDatabase           = errors.New("database error")
)

// ValidationError carries a message that is safe to show to API clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	if e.Key == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s '%v' not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NotFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// ConflictError names the entity whose uniqueness rule was violated.
type ConflictError struct {
	Entity string
	Key    any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s '%v' already exists", e.Entity, e.Key)
}

func (e *ConflictError) Unwrap() error {
	return ErrAlreadyExists
}

func AlreadyExists(entity string, key any) error {
	return &ConflictError{Entity: entity, Key: key}
}

// Database wraps a driver failure so callers can match on ErrDatabase
// without losing the underlying cause.
func Database(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDatabase, err)
}

// PublicMessage returns the client-facing text of a typed error, or "" when
// the error carries nothing safe to expose.
func PublicMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return ""
}
