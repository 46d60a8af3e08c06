// internal/pkg/apperror/errors.go
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindPreconditionFailed
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindNotFound:
		return "NOT_FOUND"
	case KindPreconditionFailed:
		return "PRECONDITION_FAILED"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error is a classified error whose message is safe to return to clients
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to a response status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest creates a KindBadRequest error
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// BadRequestf creates a formatted KindBadRequest error
func BadRequestf(format string, args ...interface{}) *Error {
	return BadRequest(fmt.Sprintf(format, args...))
}

// NotFound creates a KindNotFound error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NotFoundf creates a formatted KindNotFound error
func NotFoundf(format string, args ...interface{}) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

// PreconditionFailed creates a KindPreconditionFailed error
func PreconditionFailed(message string) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: message}
}

// PreconditionFailedf creates a formatted KindPreconditionFailed error
func PreconditionFailedf(format string, args ...interface{}) *Error {
	return PreconditionFailed(fmt.Sprintf(format, args...))
}

// Conflict creates a KindConflict error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for unclassified errors
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
