// Package errors defines the coded errors flowgrid reports to users.
//
// The CLI prints [UserMessage] and exits non-zero; the HTTP API returns the
// code in the response body and picks the status with [HTTPStatus]. Both
// surfaces therefore agree on what went wrong:
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
//	errors.Is(err, errors.ErrCodeInvalidFormat) // true
//
//	err = errors.Wrap(errors.ErrCodeInvalidConfig, cause, "load %s", path)
//	errors.HTTPStatus(err) // 400
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	// Rejected input. All map to 400 except TooLarge.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeTooLarge        Code = "TOO_LARGE"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeInternal is also what an uncoded error reports as.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// statusByCode backs HTTPStatus. Codes absent here are server faults.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidFormat:   http.StatusBadRequest,
	ErrCodeInvalidConfig:   http.StatusBadRequest,
	ErrCodeInvalidDocument: http.StatusBadRequest,
	ErrCodeInvalidPath:     http.StatusBadRequest,
	ErrCodeTooLarge:        http.StatusRequestEntityTooLarge,
	ErrCodeFileNotFound:    http.StatusNotFound,
}

// Error carries a Code, a message safe to show users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that keeps cause reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// coded returns the outermost *Error in err's chain.
func coded(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error, or "" when err carries none.
func GetCode(err error) Code {
	if e, ok := coded(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause from a coded error. Other
// errors are returned as their Error string.
func UserMessage(err error) string {
	if e, ok := coded(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to a response status. Uncoded errors map to 500.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
