package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so wrapped or re-worded instances still
// compare equal to the package sentinels.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of the error carrying a specific message,
// keeping the code so classification still works.
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithCause returns a copy of the error wrapping an underlying cause.
// The cause is never rendered into Message, so driver detail stays out of
// client-facing responses.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		cause:   cause,
	}
}

// Common domain errors
var (
	ErrValidation       = NewDomainError("VALIDATION", "Invalid or missing required field")
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConflict         = NewDomainError("CONFLICT", "Resource conflicts with existing state")
	ErrUnauthenticated  = NewDomainError("UNAUTHENTICATED", "Authentication required")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrTransientBackend = NewDomainError("TRANSIENT_BACKEND", "Backend temporarily unavailable")
	ErrFatalBackend     = NewDomainError("FATAL_BACKEND", "Backend failure")
)

// IsValidation reports whether err classifies as a validation error
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err classifies as a not-found error
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err classifies as a conflict error
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsTransient reports whether err classifies as a retryable backend error
func IsTransient(err error) bool { return errors.Is(err, ErrTransientBackend) }
