package errors

import (
	"errors"
	"fmt"
)

// Exit codes reported by the batch process. Connection failures keep their
// dedicated code; everything else that aborts the run exits with ExitFailure.
const (
	ExitSuccess          = 0
	ExitConnectionFailed = 1
	ExitFailure          = 1
)

// Error is a typed run error carrying the process exit code to use when the
// run aborts.
type Error struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	ExitCode int    `json:"-"`
	Err      error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, exitCode int, message string) *Error {
	return &Error{Code: code, ExitCode: exitCode, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, exitCode int, message string) *Error {
	return &Error{Code: code, ExitCode: exitCode, Message: message, Err: err}
}

// Predefined errors for the run lifecycle stages.
var (
	ErrConfig     = New("CONFIG_ERROR", ExitFailure, "invalid configuration")
	ErrConnection = New("CONNECTION_ERROR", ExitConnectionFailed, "database unreachable")
	ErrQuery      = New("QUERY_ERROR", ExitFailure, "aggregation failed")
	ErrWrite      = New("WRITE_ERROR", ExitFailure, "report write failed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrQuery.Code, ErrQuery.ExitCode, ErrQuery.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
