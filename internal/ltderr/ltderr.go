// Package ltderr provides structured error types for the load take-down
// pipeline. Errors carry a machine-readable code so callers can tell
// fatal configuration problems apart from recoverable data issues.
package ltderr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// CodeConfig marks fatal configuration errors: a required input
	// file or CSV column is absent, or a config value is invalid.
	CodeConfig Code = "CONFIG"

	// CodeIO marks file read/write failures.
	CodeIO Code = "IO"

	// CodeMalformedRow marks unparseable input rows. These are
	// recoverable: the row is skipped and a count reported.
	CodeMalformedRow Code = "MALFORMED_ROW"

	// CodeDegenerateGeometry marks geometry that cannot be processed
	// (fewer than 3 sites, no closed boundary, empty clip). Recoverable:
	// the affected floor or group is skipped or approximated.
	CodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// HasCode reports whether err or any error in its chain carries code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
		if err == nil {
			return false
		}
	}
	return false
}

// IsFatal reports whether err should abort the current operation rather
// than being skipped and counted.
func IsFatal(err error) bool {
	return HasCode(err, CodeConfig) || HasCode(err, CodeIO)
}
