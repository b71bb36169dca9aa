// Package apperror defines the error kinds shared by the data layer and its callers.
//
// Every error built here unwraps to one of the sentinels, so callers branch
// with errors.Is and keep the human-readable message from Error().
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/domonda/go-errs"
)

const (
	ErrBadRequest   errs.Sentinel = "bad request"
	ErrNotFound     errs.Sentinel = "not found"
	ErrUnauthorized errs.Sentinel = "unauthorized"
)

// Error carries a message for one of the sentinel kinds.
type Error struct {
	Kind    errs.Sentinel
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind errs.Sentinel, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BadRequest reports invalid input.
func BadRequest(format string, args ...interface{}) error {
	return newError(ErrBadRequest, format, args...)
}

// NotFound reports a missing entity.
func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

// Unauthorized reports a rejected caller. Raised by the authorization layer.
func Unauthorized(format string, args ...interface{}) error {
	return newError(ErrUnauthorized, format, args...)
}

// Message returns the human-readable message of err. Errors wrapped around an
// *Error yield only its message, without the wrapping context.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// StatusCode maps an error to the HTTP status a response layer should use.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
