// ================== pkg/errors/errors.go =================
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the API failure categories
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindConflict
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrDuplicate    = errors.New("resource already exists")
	ErrValidation   = errors.New("validation failed")
)

// AppError carries a user-facing message plus the underlying cause, which is
// only ever logged
type AppError struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) and friends match on Kind
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrUnauthorized:
		return e.Kind == KindAuthentication
	case ErrForbidden:
		return e.Kind == KindAuthorization
	case ErrValidation, ErrBadRequest:
		return e.Kind == KindValidation
	case ErrDuplicate:
		return e.Kind == KindConflict
	case ErrInternal:
		return e.Kind == KindServer
	}
	return false
}

// Status maps the error kind to an HTTP status code
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Code: code, Err: err}
}

func Validation(code, message string) *AppError {
	return newError(KindValidation, code, message, nil)
}

func NotFound(code, message string) *AppError {
	return newError(KindNotFound, code, message, nil)
}

func Authentication(code, message string) *AppError {
	return newError(KindAuthentication, code, message, nil)
}

func Authorization(code, message string) *AppError {
	return newError(KindAuthorization, code, message, nil)
}

func Conflict(code, message string) *AppError {
	return newError(KindConflict, code, message, nil)
}

// Internal wraps an unexpected failure; the cause stays server side
func Internal(code, message string, err error) *AppError {
	return newError(KindServer, code, message, err)
}

// As extracts an *AppError from err, falling back to a generic server error
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("INTERNAL_ERROR", "Internal server error", err)
}
