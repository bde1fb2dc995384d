package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrCredentialFormat
	ErrInvalidToken
	ErrMissingSubject
	ErrUserNotFound
	ErrUserInactive
	ErrParentNotFound
	ErrCrossTenantReference
	ErrEntityInactive
	ErrDependentRecordsExist
	ErrDuplicateValue
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
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

// StatusCode maps the error kind to an HTTP status. The transport layer
// relies on this instead of inspecting store-specific error text.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound, ErrParentNotFound:
		return http.StatusNotFound
	case ErrUnauthorized, ErrInvalidToken, ErrMissingSubject, ErrUserNotFound, ErrCredentialFormat:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrBadRequest, ErrUserInactive, ErrCrossTenantReference, ErrEntityInactive,
		ErrDependentRecordsExist, ErrDuplicateValue:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the error code carried by err, or ErrInternal for
// untyped errors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// Error constructors

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "permission denied"
	}
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func CredentialFormat(err error) *AppError {
	return &AppError{
		Code:    ErrCredentialFormat,
		Message: "stored credential is malformed",
		Err:     err,
	}
}

func InvalidToken(err error) *AppError {
	return &AppError{
		Code:    ErrInvalidToken,
		Message: "invalid or expired token",
		Err:     err,
	}
}

func MissingSubject() *AppError {
	return &AppError{
		Code:    ErrMissingSubject,
		Message: "token has no subject claim",
	}
}

func UserNotFound(username string) *AppError {
	return &AppError{
		Code:    ErrUserNotFound,
		Message: fmt.Sprintf("user %q not found", username),
	}
}

func UserInactive(username string) *AppError {
	return &AppError{
		Code:    ErrUserInactive,
		Message: fmt.Sprintf("user %q is inactive", username),
	}
}

func ParentNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrParentNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func CrossTenantReference(message string) *AppError {
	return &AppError{
		Code:    ErrCrossTenantReference,
		Message: message,
	}
}

func EntityInactive(entity, status string) *AppError {
	return &AppError{
		Code:    ErrEntityInactive,
		Message: fmt.Sprintf("%s is not active, current status: %s", entity, status),
	}
}

func DependentRecordsExist(message string) *AppError {
	return &AppError{
		Code:    ErrDependentRecordsExist,
		Message: message,
	}
}

func DuplicateValue(field string, err error) *AppError {
	msg := "duplicate value"
	if field != "" {
		msg = fmt.Sprintf("%s already exists", field)
	}
	return &AppError{
		Code:    ErrDuplicateValue,
		Message: msg,
		Field:   field,
		Err:     err,
	}
}
