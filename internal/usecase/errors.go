package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

const msgInternal = "internal server error"

// HTTPError carries the status and the caller-safe message.
// Err is the underlying cause; it is logged, never sent to the caller.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func badRequest(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }
func forbidden(msg string) error  { return NewHTTPError(http.StatusForbidden, msg) }
func notFound(msg string) error   { return NewHTTPError(http.StatusNotFound, msg) }
func conflict(msg string) error   { return NewHTTPError(http.StatusConflict, msg) }

func internalError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: msgInternal, Err: err}
}

// passOrInternal keeps an HTTPError as is and wraps anything else as 500.
func passOrInternal(err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return internalError(err)
}
