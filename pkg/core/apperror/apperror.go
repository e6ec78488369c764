// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     apperror
// Description: Coded application errors with details and transport mapping
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/grpc/codes"
)

// Code classifies an error for callers and transports
type Code string

const (
	CodeUnknown         Code = "UNKNOWN"
	CodeInternal        Code = "INTERNAL"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeConfigInvariant Code = "CONFIG_INVARIANT"
	CodeExportFailed    Code = "EXPORT_FAILED"
)

// String returns the code as string
func (c Code) String() string {
	return string(c)
}

// Error is a structured error carrying a code, a user-facing message and
// optional details
type Error struct {
	code    Code
	message string
	details map[string]interface{}
	cause   error
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		code:    code,
		message: message,
	}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. Returns nil if err is nil.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		code:    code,
		message: message,
		cause:   err,
	}
}

// WithDetail returns a copy of the error with an additional detail
func (e *Error) WithDetail(key string, value interface{}) *Error {
	clone := *e
	clone.details = make(map[string]interface{}, len(e.details)+1)
	for k, v := range e.details {
		clone.details[k] = v
	}
	clone.details[key] = value
	return &clone
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Message returns the user-facing message without the cause
func (e *Error) Message() string {
	return e.message
}

// Details returns a copy of the attached details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.code))
	b.WriteString("] ")
	b.WriteString(e.message)

	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.details[k])
		}
		b.WriteString(")")
	}

	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.code == e.code
}

// CodeOf returns the code of the first *Error in err's chain
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}

// HasCode reports whether err carries the given code
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// DetailsOf returns the details attached to err, nil for foreign errors
func DetailsOf(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) && len(e.details) > 0 {
		return e.Details()
	}
	return nil
}

// HTTPStatus maps a code to an HTTP status
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConfigInvariant, CodeExportFailed, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps a code to a gRPC status code
func GRPCCode(code Code) codes.Code {
	switch code {
	case CodeInvalidInput:
		return codes.InvalidArgument
	case CodeNotFound:
		return codes.NotFound
	case CodeConfigInvariant:
		return codes.FailedPrecondition
	case CodeExportFailed, CodeInternal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
