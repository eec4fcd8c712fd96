package dto

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrCodeConflict))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrCodeForbidden))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrCodeUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("ERR_SOMETHING_NEW"))
}

func TestClassifyError(t *testing.T) {
	t.Run("domain errors carry their message", func(t *testing.T) {
		code, msg := ClassifyError(shared.ErrNotFound.WithMessage("license 7 not found"))
		assert.Equal(t, ErrCodeNotFound, code)
		assert.Equal(t, "license 7 not found", msg)

		code, _ = ClassifyError(shared.ErrConflict)
		assert.Equal(t, ErrCodeConflict, code)
	})

	t.Run("unknown errors collapse to internal with no detail", func(t *testing.T) {
		code, msg := ClassifyError(errors.New("pq: column Users.Password does not exist"))
		assert.Equal(t, ErrCodeInternal, code)
		assert.Equal(t, "Internal server error", msg)
	})

	t.Run("transient backend errors hide driver detail", func(t *testing.T) {
		wrapped := shared.ErrTransientBackend.WithMessage("dial tcp 10.0.0.5:1433: i/o timeout")
		code, msg := ClassifyError(wrapped)
		assert.Equal(t, ErrCodeUnavailable, code)
		assert.Equal(t, "Backend temporarily unavailable", msg)
	})
}
