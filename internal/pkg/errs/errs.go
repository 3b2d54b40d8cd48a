/*
Package errs defines the application error taxonomy.

Every failure surfaced to a caller is classified into one of a small set of
kinds (authentication, not found, validation, conflict, internal). Each kind
maps to an HTTP status, so handlers and the WebSocket layer can translate an
error without inspecting call-site specifics.
*/
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is the default for unexpected or uncaught failures.
	KindInternal Kind = iota

	// KindAuthentication covers missing, malformed, or expired credentials.
	KindAuthentication

	// KindNotFound covers lookups for absent accounts or characters.
	KindNotFound

	// KindValidation covers malformed input fields and chat frames.
	KindValidation

	// KindConflict covers duplicate accounts and duplicate characters.
	KindConflict
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the classified error type used across the application.
type Error struct {
	// Kind determines how the error is reported (HTTP status, frame type).
	Kind Kind

	// Message is the user-facing description.
	Message string

	// Err is the wrapped underlying cause, if any.
	Err error
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Authentication builds a KindAuthentication error.
func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Validation builds a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal wraps an unexpected failure. The underlying error is kept for
// logging but never sent to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Something went wrong. Please try again.", Err: err}
}

// KindOf extracts the kind from any error. Unclassified errors report
// KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message from any error. Unclassified
// errors get the generic internal message so raw details never leak.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
