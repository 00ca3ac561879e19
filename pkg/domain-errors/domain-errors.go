// Package domainerrors gives failures a stable, transport independent code.
// Services produce them; the HTTP layer maps codes to statuses.
package domainerrors

import (
	"errors"
	"fmt"
	"log/slog"
)

type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_failed"
	CodeInternal     Code = "internal_error"
	CodeConflict     Code = "conflict"
	CodeUnavailable  Code = "unavailable"
	CodeTimeout      Code = "timeout"
	CodeUnauthorized Code = "unauthorized"

	// Credential pipeline codes.
	CodeConfiguration    Code = "configuration_error" // unresolvable strategy, missing option, unknown category weight
	CodeAssetNotFound    Code = "asset_not_found"
	CodeNotEligible      Code = "not_eligible"
	CodeRenderFailure    Code = "render_failure"
	CodeGenerationFailed Code = "generation_failed"
)

// Error is a coded failure. Message is safe to show to API callers; Err is
// the cause and is only logged.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error target carrying the same code, so
// errors.Is(err, &Error{Code: CodeNotFound}) finds it anywhere in the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// LogValue groups code, message and cause under one slog attribute.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("code", string(e.Code))}
	if e.Message != "" {
		attrs = append(attrs, slog.String("message", e.Message))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches msg to err. When err already carries a domain code that code
// is kept; otherwise code is used.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		code = existing.Code
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// Tag wraps err under code unconditionally. Unlike Wrap, the outer code wins,
// while the original cause stays reachable through errors.Is and errors.As.
func Tag(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether the outermost domain error in the chain carries code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// CodeOf returns the outermost domain code of err, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
