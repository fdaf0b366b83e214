package models

import (
	"errors"
	"fmt"
)

// Service error codes, mapped to HTTP statuses at the handler layer.
const (
	CodeValidation  = "validation"
	CodeConflict    = "conflict"
	CodeNotFound    = "not_found"
	CodeSecurity    = "security"
	CodeUnavailable = "unavailable"
)

// ServiceError is a business-level failure with a machine-readable code.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &ServiceError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &ServiceError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewSecurityError(format string, args ...interface{}) error {
	return &ServiceError{Code: CodeSecurity, Message: fmt.Sprintf(format, args...)}
}

func NewUnavailableError(format string, args ...interface{}) error {
	return &ServiceError{Code: CodeUnavailable, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the service error code, or "" for plain errors.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
