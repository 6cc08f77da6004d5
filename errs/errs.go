// Package errs provides the error type shared by every stage of an export run.
//
// Each stage wraps its native errors into *errs.Error so the command layer can
// report a failure once, with its kind, without knowing which driver or
// filesystem call produced it.
//
// Usage:
//
//	return errs.Wrap(errs.KindQuery, "fetch rows", err).WithTable(name)
//
//	if errs.IsConfiguration(err) {
//	    // nothing was contacted
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises a failure by the stage that produced it.
type Kind int

const (
	KindUnknown       Kind = iota
	KindConfiguration      // missing or invalid settings, detected before connecting
	KindConnection         // cannot open or ping the database
	KindQuery              // a catalog, row or column statement failed
	KindFilesystem         // an artifact could not be written
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	case KindFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the export pipeline.
type Error struct {
	Kind    Kind
	Table   string // set when the failure belongs to one table
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Table != "" {
		msg = fmt.Sprintf("table %q: %s", e.Table, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

// Unwrap allows errors.Is / errors.As to reach the driver error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithTable tags the error with a table name and returns it.
func (e *Error) WithTable(table string) *Error {
	e.Table = table
	return e
}

// New creates an *Error with no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error around cause. If cause is already an *Error its kind
// is kept, so classification done closer to the driver is not lost.
func Wrap(kind Kind, msg string, cause error) *Error {
	var inner *Error
	if errors.As(cause, &inner) && inner.Kind != KindUnknown {
		kind = inner.Kind
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// TableOf returns the table name attached to err, if any.
func TableOf(err error) string {
	var e *Error
	for errors.As(err, &e) {
		if e.Table != "" {
			return e.Table
		}
		err = e.Cause
	}
	return ""
}

func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
func IsConnection(err error) bool    { return KindOf(err) == KindConnection }
func IsQuery(err error) bool         { return KindOf(err) == KindQuery }
func IsFilesystem(err error) bool    { return KindOf(err) == KindFilesystem }
