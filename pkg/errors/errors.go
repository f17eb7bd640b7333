// Package errors provides structured error types for morphgraph's outer
// layers.
//
// Core packages (morph, transform, io) return plain sentinel errors. The CLI
// and the HTTP API translate those into an [Error] carrying a
// machine-readable [Code] with [Classify], and the API maps codes to HTTP
// statuses with [HTTPStatus].
//
// # Error Codes
//
//   - INVALID_*: the request or the graph it carries is malformed
//   - NOT_FOUND / FILE_NOT_FOUND: a referenced structure or file is missing
//   - TIMEOUT / CANCELED: the context ended before the work did
//   - UNAVAILABLE: a backing service (the cache) failed
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOptions, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidOptions) {
//	    // Handle validation error
//	}
//
//	// Classify a core error
//	err = errors.Classify(morphErr)
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/morphgraph/pkg/geom"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/morph/transform"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidGraph   Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeTooLarge       Code = "PAYLOAD_TOO_LARGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Context errors
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeCanceled Code = "CANCELED"

	// Backend and internal errors
	ErrCodeUnavailable Code = "UNAVAILABLE"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

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
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, or "" if err carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error
// values, and err.Error() otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// Classify returns err as an *Error. Errors that already carry a code are
// returned unchanged; known sentinels from the core packages get their
// matching code; everything else becomes INTERNAL_ERROR. Nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, context.Canceled):
		return Wrap(ErrCodeCanceled, err, "operation canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeTimeout, err, "operation timed out")
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(ErrCodeFileNotFound, err, "file not found")
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return Wrap(ErrCodeInvalidInput, err, "malformed JSON")
	case errors.Is(err, morph.ErrDuplicateKey),
		errors.Is(err, morph.ErrMissingNode),
		errors.Is(err, morph.ErrInvalidEdge),
		errors.Is(err, morph.ErrNilShape),
		errors.Is(err, morph.ErrSelfAttach),
		errors.Is(err, morph.ErrDanglingReference),
		errors.Is(err, geom.ErrEmptyShape),
		errors.Is(err, geom.ErrBadRadius):
		return Wrap(ErrCodeInvalidGraph, err, "invalid graph")
	case errors.Is(err, morph.ErrNotEndpoint), errors.Is(err, morph.ErrNilGraph):
		return Wrap(ErrCodeInvalidInput, err, "invalid argument")
	case errors.Is(err, transform.ErrMerge):
		return Wrap(ErrCodeInternal, err, "connectivity repair failed")
	}
	return Wrap(ErrCodeInternal, err, "internal error")
}

// HTTPStatus maps a code to the HTTP status the API responds with.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidOptions, ErrCodeInvalidPath:
		return http.StatusBadRequest
	case ErrCodeInvalidGraph:
		return http.StatusUnprocessableEntity
	case ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return 499 // client closed request
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
