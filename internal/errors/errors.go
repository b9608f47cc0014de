package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the HTTP layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindInvalidID
	KindNotFound
)

// Error is a classified application error. Two errors are considered equal by
// errors.Is when they share a Kind, so callers can match sentinels while
// still returning a request specific message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New creates a new classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	// ErrConflict is returned when the email is already registered.
	ErrConflict = New(KindConflict, "User already exists")
	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = New(KindInvalidCredentials, "Invalid credentials")
	// ErrUnauthorized is returned when a token is missing, invalid or resolves to no user.
	ErrUnauthorized = New(KindUnauthorized, "Not authorized, token failed")
	// ErrForbidden is returned when the caller does not own the target record.
	ErrForbidden = New(KindForbidden, "Not authorized to modify this idea")
	// ErrInvalidID is returned when an id is not a well-formed identifier.
	ErrInvalidID = New(KindInvalidID, "Invalid id")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = New(KindNotFound, "Not found")
)

// Validation builds a validation error with a specific message.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Unauthorized builds an unauthorized error with a specific message.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// NotFound builds a not found error with a specific message.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// KindOf returns the kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps application errors to HTTP errors. Unclassified errors
// become a generic 500 and their text is never exposed.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}

	switch appErr.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, "VALIDATION_ERROR")
	case KindConflict:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, "CONFLICT")
	case KindInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, appErr.Message, "INVALID_CREDENTIALS")
	case KindUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, appErr.Message, "UNAUTHORIZED")
	case KindForbidden:
		return NewHTTPError(http.StatusForbidden, appErr.Message, "FORBIDDEN")
	case KindInvalidID:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, "INVALID_ID")
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, appErr.Message, "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
