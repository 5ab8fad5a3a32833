package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies service failures; handlers map each kind to an HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindReference
	KindConflict
	KindNotFound
	KindPersistence
	KindUnauthorized
	KindForbidden
)

// Error is returned by every service operation that fails in a way the
// caller can report. Message is safe to show to clients; Err is kept for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

const persistenceMessage = "Database error occurred while processing the request."

var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid username or password"}
	ErrSessionExpired     = &Error{Kind: KindUnauthorized, Message: "Session expired, please log in again"}
)

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Reference reports a foreign key that points at a missing row.
func Reference(entity string, id uint) *Error {
	return &Error{Kind: KindReference, Message: fmt.Sprintf("%s with ID %d not found.", entity, id)}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Persistence wraps a store fault. A unique-constraint violation becomes a
// ConflictError with conflictMsg when one is given.
func Persistence(err error, conflictMsg string) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	if conflictMsg != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: conflictMsg, Err: err}
	}
	return &Error{Kind: KindPersistence, Message: persistenceMessage, Err: err}
}

// KindOf returns the Kind of err, or KindPersistence for foreign errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindPersistence
}

// PublicMessage is the client-safe message for err.
func PublicMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return persistenceMessage
}
