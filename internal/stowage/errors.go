// Package stowage implements the 3D cargo stowage engine: occupancy
// tracking, placement search and ranking, visibility/blocking analysis and
// retrieval planning for a single rectangular container.
package stowage

import (
	"errors"
	"fmt"
)

// Code identifies one of the closed taxonomy of engine error kinds.
type Code string

const (
	// CodeInvalidArgument covers bad orientation triples, non-positive
	// dimensions, and out-of-range priorities.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound covers an id absent from this container.
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict covers placement over occupied cells or a duplicate id.
	CodeConflict Code = "CONFLICT"
	// CodeNotAccessible covers a removeItem blocked by other items.
	CodeNotAccessible Code = "NOT_ACCESSIBLE"
	// CodeExhausted covers a usage budget reached.
	CodeExhausted Code = "EXHAUSTED"
	// CodeCancelled covers a long query aborted by a caller signal.
	CodeCancelled Code = "CANCELLED"
)

// StowageError is the engine's single error type: a code plus message plus
// optional wrapped cause and structured details.
type StowageError struct {
	Code    Code
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *StowageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *StowageError) Unwrap() error {
	return e.Err
}

// newErr constructs a *StowageError with the given code and message.
func newErr(code Code, message string) *StowageError {
	return &StowageError{Code: code, Message: message, Details: map[string]interface{}{}}
}

func wrapErr(code Code, message string, cause error) *StowageError {
	e := newErr(code, message)
	e.Err = cause
	return e
}

// WithDetail attaches a structured detail and returns the same error for chaining.
func (e *StowageError) WithDetail(key string, value interface{}) *StowageError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Is reports whether err carries the given taxonomy code.
func Is(err error, code Code) bool {
	var se *StowageError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsInvalidArgument reports whether err is CodeInvalidArgument.
func IsInvalidArgument(err error) bool { return Is(err, CodeInvalidArgument) }

// IsNotFound reports whether err is CodeNotFound.
func IsNotFound(err error) bool { return Is(err, CodeNotFound) }

// IsConflict reports whether err is CodeConflict.
func IsConflict(err error) bool { return Is(err, CodeConflict) }

// IsNotAccessible reports whether err is CodeNotAccessible.
func IsNotAccessible(err error) bool { return Is(err, CodeNotAccessible) }

// IsExhausted reports whether err is CodeExhausted.
func IsExhausted(err error) bool { return Is(err, CodeExhausted) }

// IsCancelled reports whether err is CodeCancelled.
func IsCancelled(err error) bool { return Is(err, CodeCancelled) }
