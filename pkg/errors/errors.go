package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT
	ErrInvalidSigningMethod = errors.New("unexpected token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenSubjectMissing  = errors.New("token has no subject")

	// Auth
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("authorization header must be 'Bearer <token>'")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotInContext   = errors.New("user not found in request context")

	// Common
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record already exists")
	ErrValidation = errors.New("validation failed")
	ErrBadRequest = errors.New("bad request")
)

// HttpError pairs a client-facing message and status with the underlying cause.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}

// NewValidationError reports a failed business-rule guard or malformed field.
func NewValidationError(format string, args ...interface{}) *HttpError {
	return NewHttpError(http.StatusBadRequest, fmt.Sprintf(format, args...), ErrValidation, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, ErrForbidden, nil)
}

func NewUnauthenticatedError(message string, cause error) *HttpError {
	if cause == nil {
		cause = ErrUnauthenticated
	}
	return NewHttpError(http.StatusUnauthorized, message, cause, nil)
}

// Conflicts are reported as 400 to match the public API contract.
func NewConflictError(message string, cause error) *HttpError {
	if cause == nil {
		cause = ErrConflict
	}
	return NewHttpError(http.StatusBadRequest, message, cause, nil)
}

// StatusCode maps any error onto the HTTP status it should surface as.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenSubjectMissing),
		errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrUserNotInContext):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
