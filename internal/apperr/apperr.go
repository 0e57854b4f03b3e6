// Package apperr defines the error taxonomy shared by all services.
//
// Errors carry a Kind that maps onto conventional status codes:
// BadRequest (400), NotFound (404), Conflict (409), Internal (500).
// Validation failures are not errors in this sense - they are returned
// as data (see internal/validation) so bulk processing never aborts.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
)

// Error is the concrete error type returned by services.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest reports a malformed operation given the current state.
func BadRequest(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// BadRequestf formats a BadRequest error.
func BadRequestf(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record, item, or a section whose status makes
// the requested sub-operation structurally impossible.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a uniqueness violation, e.g. a template name collision.
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected error. The cause is preserved for logging
// but the message shown to callers stays generic.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsBadRequest reports whether err is a BadRequest error.
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// StatusCode maps an error to its conventional HTTP-style status code.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return 400
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}
