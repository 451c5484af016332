// Package errors provides application-level error types and utilities.
// Every error that reaches the HTTP layer is expected to be an AppError so the
// response writer can map it to a status code and envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeForbidden          ErrorType = "forbidden"
	ErrorTypeInternal           ErrorType = "internal_error"
	ErrorTypeBadRequest         ErrorType = "bad_request"
	ErrorTypeRateLimited        ErrorType = "rate_limited"
	ErrorTypeAllocationFailed   ErrorType = "allocation_failed"
	ErrorTypeUnavailable        ErrorType = "service_unavailable"
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountLocked      ErrorType = "account_locked"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType    `json:"type"`
	Message string       `json:"message"`
	Code    int          `json:"code"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// WithFields attaches field-level messages and returns the same error.
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	e.Fields = append(e.Fields, fields...)
	return e
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewInvalidCredentialsError is returned when an email/password pair does not match.
func NewInvalidCredentialsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidCredentials, http.StatusUnauthorized, message, details)
}

// NewAccountLockedError is returned while an account is inside its lockout window.
func NewAccountLockedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAccountLocked, http.StatusUnauthorized, message, details)
}

// NewTokenExpiredError creates a new expired token error
func NewTokenExpiredError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTokenExpired, http.StatusUnauthorized, message, details)
}

// NewTokenInvalidError creates a new invalid token error
func NewTokenInvalidError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTokenInvalid, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewRateLimitedError creates a new rate limit error
func NewRateLimitedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, message, details)
}

// NewAllocationError is returned when a sequence number could not be allocated
// within the retry budget. Callers should treat it as transient.
func NewAllocationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAllocationFailed, http.StatusInternalServerError, message, details)
}

// NewServiceUnavailableError creates a new service unavailable error
func NewServiceUnavailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnavailable, http.StatusServiceUnavailable, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsAllocationError checks if the error is an allocation failure
func IsAllocationError(err error) bool {
	return isType(err, ErrorTypeAllocationFailed)
}

// IsAccountLockedError checks if the error is an account lock
func IsAccountLockedError(err error) bool {
	return isType(err, ErrorTypeAccountLocked)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL, SQLite
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	// MongoDB
	if strings.Contains(errStr, "E11000") {
		return true
	}
	return false
}
