package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthenticated   ErrorKind = "UNAUTHENTICATED"
	KindAccessDenied      ErrorKind = "ACCESS_DENIED"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindStorage           ErrorKind = "STORAGE_ERROR"
)

// Error is returned by every service operation that fails for a reason the
// caller can act on. errors.Is matches on Kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == ""
}

var (
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrAccessDenied      = &Error{Kind: KindAccessDenied}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrStorage           = &Error{Kind: KindStorage}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func accessDenied(format string, args ...interface{}) error {
	return newError(KindAccessDenied, format, args...)
}

func notFound(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

func validation(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func invalidTransition(format string, args ...interface{}) error {
	return newError(KindInvalidTransition, format, args...)
}

func storage(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindStorage for errors that did not
// come from a service.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

var defaultMessages = map[ErrorKind]string{
	KindUnauthenticated:   "Unauthorized. Please log in.",
	KindAccessDenied:      "Access denied",
	KindNotFound:          "Not found",
	KindValidation:        "Invalid request",
	KindInvalidTransition: "Status change not allowed",
	KindStorage:           "Something went wrong. Please try again.",
}

// MessageOf returns the client-facing message of err. Storage details are
// never exposed.
func MessageOf(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindStorage {
		return defaultMessages[KindStorage]
	}
	if e.Message != "" {
		return e.Message
	}
	return defaultMessages[e.Kind]
}
