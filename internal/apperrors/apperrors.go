package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so handlers can map it to an HTTP status without
// inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindForbidden
	KindConflict
)

// Error is a classified application error.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Invalid reports a validation failure (bad input, missing fields).
func Invalid(format string, args ...interface{}) error {
	return &Error{kind: KindInvalid, msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record, with identifying context.
func NotFound(format string, args ...interface{}) error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Forbidden reports that the caller is not allowed to act on the record.
func Forbidden(format string, args ...interface{}) error {
	return &Error{kind: KindForbidden, msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a business-rule violation (insufficient stock, order not
// cancellable).
func Conflict(format string, args ...interface{}) error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err. Unclassified errors are treated
// as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-visible message for err. Internal errors are
// masked so infrastructure details never leak to callers.
func Message(err error) string {
	if KindOf(err) == KindInternal {
		return "server error, please try again"
	}
	return err.Error()
}
