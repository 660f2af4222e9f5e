// Package workflow holds the approval workflow rules: the status transition
// table, the link usability checks, and the error taxonomy shared by every
// service and handler.
package workflow

import "errors"

// Kind classifies a workflow failure. Handlers map kinds to HTTP statuses;
// services use them to decide what the caller may see.
type Kind string

const (
	KindUnknown           Kind = ""
	KindNotFound          Kind = "not_found"
	KindExpired           Kind = "expired"
	KindInvalidTransition Kind = "invalid_transition"
	KindValidation        Kind = "validation_error"
	KindUnauthorized      Kind = "unauthorized"
	KindUpstream          Kind = "upstream"
)

// Error carries a kind, a user-facing message and an optional wrapped cause.
// The cause is kept for logs and never shown to anonymous callers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Expired(msg string) error {
	return &Error{Kind: KindExpired, Msg: msg}
}

func InvalidTransition(msg string) error {
	return &Error{Kind: KindInvalidTransition, Msg: msg}
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

// KindOf returns the kind of err, unwrapping as needed. Non-workflow errors
// report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-facing part of err: the workflow message without
// the wrapped cause, or err.Error() for plain errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}
