// Package apperr defines the application error taxonomy.
//
// Services return *apperr.Error; the HTTP layer maps each kind to a status
// code and a safe JSON message. Anything that is not an *apperr.Error is
// treated as Internal: logged server-side, surfaced as a generic message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// InvalidInput: malformed or missing required field.
	InvalidInput Kind = iota
	// Unauthorized: missing/invalid/expired token or wrong credentials.
	Unauthorized
	// Conflict: duplicate registration.
	Conflict
	// NotFound: unknown id, or a resource owned by another user.
	NotFound
	// InvalidState: operation preconditions unmet (e.g. empty-cart checkout).
	InvalidState
	// Internal: unexpected storage/runtime failure.
	Internal
)

// Error is a classified application error with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never surfaced
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case InvalidInput, InvalidState:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error of the given kind with a caller-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Is lets errors.Is match two apperr values by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// From extracts an *Error from err, wrapping unknown errors as Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(Internal, "Internal server error", err)
}
