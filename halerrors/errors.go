// Package halerrors provides structured error types for haltools.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ArgumentError: invalid construction arguments (empty rel/href, malformed
//     CURI links, invalid paging parameters)
//   - MatchError: a relation type that does not match a CURI template
//   - ParseError: malformed HAL+JSON documents and wrong-shaped reserved keys
//
// # Usage with errors.Is
//
//	_, err := hal.Curi("x", "http://example.org/rels/broken")
//	if errors.Is(err, halerrors.ErrArgument) {
//	    // Handle the invalid CURI definition
//	}
package halerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrArgument indicates an invalid construction argument.
	ErrArgument = errors.New("invalid argument")

	// ErrRelMismatch indicates a relation type that does not match a CURI template.
	ErrRelMismatch = errors.New("rel does not match the CURI template")

	// ErrParse indicates a malformed HAL+JSON document.
	ErrParse = errors.New("parse error")
)

// ArgumentError represents an invalid argument passed to a constructor or
// builder. This covers malformed CURI links, empty required link fields and
// invalid paging parameters.
type ArgumentError struct {
	// Param is the name of the offending parameter (e.g. "rel", "skip")
	Param string
	// Message describes the violated invariant
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ArgumentError) Error() string {
	msg := "invalid argument"
	if e.Param != "" {
		msg += " " + e.Param
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ArgumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// Argumentf constructs an ArgumentError for param with a formatted message.
func Argumentf(param, format string, args ...any) *ArgumentError {
	return &ArgumentError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// MatchError represents a failed attempt to rewrite a relation type through a
// CURI template that matches neither its curied nor its expanded form.
//
// This is a programmer-error-class failure: callers should check IsMatching
// first, or catch this error when operating on untrusted input.
type MatchError struct {
	// Rel is the candidate relation type
	Rel string
	// Template is the CURI template the candidate was matched against
	Template string
}

// Error returns a human-readable error message.
func (e *MatchError) Error() string {
	return fmt.Sprintf("rel %q does not match the CURI template %q", e.Rel, e.Template)
}

// Is reports whether target matches this error type.
func (e *MatchError) Is(target error) bool {
	return target == ErrRelMismatch
}

// ParseError represents a failure to parse a HAL+JSON document. This includes
// JSON deserialization errors and reserved keys (_links, _embedded) with the
// wrong shape.
type ParseError struct {
	// Rel is the relation being parsed when the error occurred, if any
	Rel string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Rel != "" {
		msg += " in rel " + e.Rel
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
