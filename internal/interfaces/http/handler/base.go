package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/logger"
	"github.com/sltrack/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given code and message
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.HTTPStatus(code), dto.NewErrorResponse(code, message))
}

// HandleError classifies a domain error and sends the matching response.
// Detail that the classification stripped from the body still reaches the
// request log.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	code, message := dto.ClassifyError(err)
	if code == dto.ErrCodeInternal || code == dto.ErrCodeUnavailable {
		logger.GetGinLogger(c).Error("request failed", zap.String("code", code), zap.Error(err))
	}
	h.Error(c, code, message)
}

// BindJSON binds the request body and reports a validation failure in the
// standard envelope. Returns false when the request was already answered.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrValidation.WithMessage("invalid %s parameter", name)
	}
	return id, nil
}

// optionalID reads an integer query parameter, zero when absent.
func optionalID(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrValidation.WithMessage("invalid %s parameter", name)
	}
	return id, nil
}
