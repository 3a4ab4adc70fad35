// Package apperr defines the application error taxonomy and its mapping to
// HTTP status codes.
//
// Services return *apperr.Error values; the response layer renders them as
// the uniform {"success": false, "message": "..."} envelope. Internal errors
// keep their detail server-side and surface only a generic message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and handling decisions.
type Kind int

const (
	// Internal is an unexpected failure (store error, bug). 500, opaque message.
	Internal Kind = iota
	// Validation is malformed or out-of-range input. 400.
	Validation
	// NotFound is a missing product, order, or admin. 404.
	NotFound
	// Unauthorized is a missing, invalid, or expired credential. 401.
	Unauthorized
	// Forbidden is a valid credential without permission (inactive admin). 403.
	Forbidden
	// InsufficientStock rejects an order line exceeding available stock. 400.
	InsufficientStock
	// Conflict is a state conflict on write, such as a refused status
	// transition. Rendered as 400 alongside the other request rejections.
	Conflict
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string // safe to show to callers
	Err     error  // wrapped cause, logged server-side only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an internal error. The message stays generic for
// callers; cause detail is available to logs via Error().
func Wrap(err error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validationf(format string, args ...any) *Error   { return New(Validation, format, args...) }
func NotFoundf(format string, args ...any) *Error     { return New(NotFound, format, args...) }
func Unauthorizedf(format string, args ...any) *Error { return New(Unauthorized, format, args...) }
func Forbiddenf(format string, args ...any) *Error    { return New(Forbidden, format, args...) }
func Conflictf(format string, args ...any) *Error     { return New(Conflict, format, args...) }

// Stockf builds an InsufficientStock error naming the offending product.
func Stockf(format string, args ...any) *Error { return New(InsufficientStock, format, args...) }

// KindOf returns the Kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// HTTPStatus maps err to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation, InsufficientStock, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-safe message for err. Unclassified and
// internal errors collapse to a generic message so no detail leaks.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != Internal {
		return ae.Message
	}
	return "Internal server error"
}
