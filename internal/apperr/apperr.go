// Package apperr defines the typed failure taxonomy shared by all services.
// Domain failures are returned as values, never panicked; the API layer maps
// each Kind onto an HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	KindValidation Kind = iota // missing/malformed required field
	KindDuplicate              // slug/name/username/email collision
	KindNotFound               // referenced id absent
	KindForbidden              // permission contract violated
	KindConflict               // concurrent-write or referential conflict
	KindInactive               // account deactivated
	KindInvalidCredentials
	KindStorage // storage-layer failure, partial writes rolled back
)

// Error carries a Kind plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an Error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Storage wraps an unexpected storage failure.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage error", Err: err}
}

// KindOf extracts the Kind from err, or KindStorage if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
