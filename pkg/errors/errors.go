// Package errors provides structured error types for c4render.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, HTTP server, and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Validation failures (empty required fields, unsupported output formats,
// empty diagrams, bad output filenames) all carry one of the validation codes
// and are reported by [IsValidation]. They are surfaced synchronously and are
// never retried.
//
// # Dangling References
//
// A relationship whose endpoint names an unknown entity is not an error.
// [DanglingReferenceWarning] describes the skipped edge so callers can log it,
// but it is never returned from a registry, layout, or render call.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "container name cannot be empty")
//	if errors.IsValidation(err) {
//	    // reject the request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeMissingField    Code = "MISSING_FIELD"
	ErrCodeDuplicateName   Code = "DUPLICATE_NAME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeEmptyDiagram    Code = "EMPTY_DIAGRAM"
	ErrCodeInvalidFilename Code = "INVALID_FILENAME"
	ErrCodeInvalidLevel    Code = "INVALID_LEVEL"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var validationCodes = map[Code]bool{
	ErrCodeInvalidInput:    true,
	ErrCodeMissingField:    true,
	ErrCodeDuplicateName:   true,
	ErrCodeInvalidFormat:   true,
	ErrCodeEmptyDiagram:    true,
	ErrCodeInvalidFilename: true,
	ErrCodeInvalidLevel:    true,
	ErrCodeInvalidDocument: true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsValidation reports whether err is a validation error, i.e. carries one of
// the INVALID_*, MISSING_FIELD, DUPLICATE_NAME or EMPTY_DIAGRAM codes.
func IsValidation(err error) bool {
	return validationCodes[GetCode(err)]
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the error text without the code prefix of the first
// *Error in the chain. Context added by outer wrapping is kept, so
// "doc.json: MISSING_FIELD: user name cannot be empty" becomes
// "doc.json: user name cannot be empty".
func UserMessage(err error) string {
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		return strings.Replace(msg, string(e.Code)+": ", "", 1)
	}
	return msg
}

// DanglingReferenceWarning describes an edge that names an entity missing
// from the diagram. The edge stays in the document but is not laid out or drawn.
type DanglingReferenceWarning struct {
	Level    string // Diagram level ("context", "container", ...)
	Edge     string // Human-readable edge description, e.g. "A -> B"
	Endpoint string // "source" or "target"
	Name     string // The unresolved entity name
}

// Error implements the error interface so warnings can be logged uniformly.
func (w DanglingReferenceWarning) Error() string {
	return fmt.Sprintf("%s: skipped edge %s: unknown %s %q", w.Level, w.Edge, w.Endpoint, w.Name)
}
