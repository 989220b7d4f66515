package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service method wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrGeneration   = errors.New("generation failure")
	ErrPersistence  = errors.New("persistence error")
)

// Error is a classified service failure. Message is safe to show to clients;
// Err holds the underlying cause for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the error's kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func invalidStateError(msg string) error {
	return &Error{Kind: ErrInvalidState, Message: msg}
}

func conflictError(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func unauthorizedError(msg string, err error) error {
	return &Error{Kind: ErrUnauthorized, Message: msg, Err: err}
}

func generationError(msg string, err error) error {
	return &Error{Kind: ErrGeneration, Message: msg, Err: err}
}

func persistenceError(msg string, err error) error {
	return &Error{Kind: ErrPersistence, Message: msg, Err: err}
}
