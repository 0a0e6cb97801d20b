// Package errors defines the sentinel errors use cases return. Handlers map them to HTTP status
// codes, so repositories translate driver errors into these before they leave the data layer.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a subscription or client does not exist, and when a dispatch
	// has no subscribers to deliver to.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on unique constraint violations.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned when a request fails domain validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned for missing, expired or unknown credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when a client's policies do not grant the capability.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable is returned when the database or cache cannot serve the request.
	ErrUnavailable = errors.New("unavailable")
)

// New returns a plain error with message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping it in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether target is anywhere in err's chain.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain assignable to target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
