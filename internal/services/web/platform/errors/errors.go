// Package errors defines the typed failures web handlers turn into HTTP
// statuses and localized messages.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnknown         Kind = "unknown"
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindUnavailable     Kind = "unavailable"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindTooManyRequests Kind = "too_many_requests"
)

var statusByKind = map[Kind]int{
	KindInvalidInput:    http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindUnavailable:     http.StatusServiceUnavailable,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindTooManyRequests: http.StatusTooManyRequests,
}

// Error is a typed failure. Key names the catalog message shown to the
// viewer; Message and Cause are for logs.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Cause   error
}

func (e Error) Error() string {
	text := e.Message
	if text == "" {
		text = string(e.Kind)
	}
	if e.Cause != nil {
		return text + ": " + e.Cause.Error()
	}
	return text
}

// Unwrap exposes the underlying cause, such as a context deadline.
func (e Error) Unwrap() error {
	return e.Cause
}

// E builds an Error without a catalog key.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds an Error with a catalog key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds an Error with a catalog key around cause.
func Wrap(kind Kind, key string, message string, cause error) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message, Cause: cause}
}

func typed(err error) (Error, bool) {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) {
		return Error{}, false
	}
	return appErr, true
}

// KindOf returns the error kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	if appErr, ok := typed(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err is a typed error of kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// LocalizationKey returns the catalog key carried by err, if any.
func LocalizationKey(err error) string {
	appErr, _ := typed(err)
	return strings.TrimSpace(appErr.Key)
}

// HTTPStatus maps err to a response status. Untyped errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if status, ok := statusByKind[KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
