// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities.

package api

import "fmt"

// ErrInvalidArgument is the sentinel behind ErrCodeInvalidArgument.
var ErrInvalidArgument = fmt.Errorf("invalid argument")

// ErrorCode represents specific error conditions.
type ErrorCode int

// ErrCodeInvalidArgument marks a rejected call argument, such as a nil
// callback passed to Engine.Start.
const ErrCodeInvalidArgument ErrorCode = iota + 1

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap maps the code onto its sentinel so errors.Is works against the
// package-level values.
func (e *Error) Unwrap() error {
	if e.Code == ErrCodeInvalidArgument {
		return ErrInvalidArgument
	}
	return nil
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
