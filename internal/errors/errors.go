package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure for reporting and exit status purposes.
type Kind string

// Error kind constants for standardized failure reporting
const (
	KindNotFound      Kind = "NOT_FOUND"
	KindParseFailure  Kind = "PARSE_FAILURE"
	KindIOFailure     Kind = "IO_FAILURE"
	KindLogicConflict Kind = "LOGIC_CONFLICT"
)

// Sentinel errors, one per kind. Every *Error matches the sentinel of its kind
// with errors.Is.
var (
	ErrNotFound      = stderrors.New("not found")
	ErrParseFailure  = stderrors.New("parse failure")
	ErrIOFailure     = stderrors.New("io failure")
	ErrLogicConflict = stderrors.New("logic conflict")
)

// Exit status constants returned to the shell.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Error is a classified failure carrying the operation and entity it concerns.
type Error struct {
	Kind    Kind
	Op      string
	Entity  string
	Message string
	Err     error
}

// Error renders the failure as "<op> <entity>: <message>: <cause>".
func (e *Error) Error() string {
	msg := e.Message
	if e.Entity != "" {
		msg = fmt.Sprintf("%s: %s", e.Entity, msg)
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s %s", e.Op, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for this error's kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(kind Kind) error {
	switch kind {
	case KindNotFound:
		return ErrNotFound
	case KindParseFailure:
		return ErrParseFailure
	case KindIOFailure:
		return ErrIOFailure
	case KindLogicConflict:
		return ErrLogicConflict
	default:
		return nil
	}
}

// NotFound returns an error for an entity missing at every searched location.
func NotFound(op, entity, message string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, Message: message, Err: err}
}

// ParseFailure returns an error for malformed persisted content.
func ParseFailure(op, entity, message string, err error) *Error {
	return &Error{Kind: KindParseFailure, Op: op, Entity: entity, Message: message, Err: err}
}

// IOFailure returns an error for a failed read, write or directory creation.
func IOFailure(op, entity, message string, err error) *Error {
	return &Error{Kind: KindIOFailure, Op: op, Entity: entity, Message: message, Err: err}
}

// LogicConflict returns an error for an operation rejected by the current state,
// such as occupying an occupied apartment.
func LogicConflict(op, entity, message string) *Error {
	return &Error{Kind: KindLogicConflict, Op: op, Entity: entity, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or an empty Kind.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitFailure
}
