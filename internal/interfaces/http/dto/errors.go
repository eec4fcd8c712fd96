package dto

import (
	"errors"
	"net/http"

	"github.com/sltrack/backend/internal/domain/shared"
)

// Error code constants, one per class of failure the API reports.
const (
	// ErrCodeValidation is used when a required field is missing or invalid
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a referenced resource does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for uniqueness and cardinality violations
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeUnauthorized is used when no identity could be resolved
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the resolved role is insufficient
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeUnavailable is used for transient backend failures worth retrying
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
	// ErrCodeInternal is used for everything else; detail stays in the logs
	ErrCodeInternal = "ERR_INTERNAL"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for an error code, defaulting to 500.
func HTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ClassifyError maps a domain error onto an API error code and message.
// Unclassified errors collapse to ERR_INTERNAL with a generic message so no
// internal detail reaches the response body.
func ClassifyError(err error) (code, message string) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return ErrCodeInternal, "Internal server error"
	}

	switch {
	case errors.Is(err, shared.ErrValidation):
		return ErrCodeValidation, de.Message
	case errors.Is(err, shared.ErrNotFound):
		return ErrCodeNotFound, de.Message
	case errors.Is(err, shared.ErrConflict):
		return ErrCodeConflict, de.Message
	case errors.Is(err, shared.ErrUnauthenticated):
		return ErrCodeUnauthorized, de.Message
	case errors.Is(err, shared.ErrForbidden):
		return ErrCodeForbidden, de.Message
	case errors.Is(err, shared.ErrTransientBackend):
		return ErrCodeUnavailable, "Backend temporarily unavailable"
	default:
		return ErrCodeInternal, "Internal server error"
	}
}
