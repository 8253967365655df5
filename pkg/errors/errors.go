package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource conflict")
	ErrInternal     = errors.New("internal server error")
	ErrValidation   = errors.New("validation error")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// AppError is an error that knows its HTTP status and API code
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
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

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// Wrap wraps err, keeping it reachable through errors.Is
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{Err: err, Code: code, Message: message, StatusCode: statusCode}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Code: "UNAUTHORIZED", Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Code: "FORBIDDEN", Message: message, StatusCode: http.StatusForbidden}
}

func BadRequest(message string) *AppError {
	return &AppError{Err: ErrBadRequest, Code: "BAD_REQUEST", Message: message, StatusCode: http.StatusBadRequest}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Code: "CONFLICT", Message: message, StatusCode: http.StatusConflict}
}

func Internal(message string) *AppError {
	return &AppError{Err: ErrInternal, Code: "INTERNAL_ERROR", Message: message, StatusCode: http.StatusInternalServerError}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// DomainNotAllowed is returned at the session gate for emails outside the organization
func DomainNotAllowed(domain string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Code:       "DOMAIN_NOT_ALLOWED",
		Message:    fmt.Sprintf("only @%s email addresses may sign in", domain),
		StatusCode: http.StatusUnauthorized,
	}
}

func TokenExpired() *AppError {
	return &AppError{Err: ErrTokenExpired, Code: "TOKEN_EXPIRED", Message: "token has expired", StatusCode: http.StatusUnauthorized}
}

func TokenInvalid() *AppError {
	return &AppError{Err: ErrTokenInvalid, Code: "TOKEN_INVALID", Message: "invalid token", StatusCode: http.StatusUnauthorized}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
