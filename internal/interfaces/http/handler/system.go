package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/infrastructure/database"
	"github.com/sltrack/backend/internal/interfaces/http/dto"
)

// SystemHandler handles the health endpoint. It sits outside the identity
// middleware so load balancers can probe it without credentials.
type SystemHandler struct {
	BaseHandler
	db      database.Executor
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db database.Executor, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Health handles GET /healthz. A failed database round trip answers 503.
func (h *SystemHandler) Health(c *gin.Context) {
	if _, err := h.db.Get(c.Request.Context(), "SELECT 1 AS Up"); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeUnavailable, "database unreachable"))
		return
	}
	h.Success(c, gin.H{
		"status":  "ok",
		"dialect": h.db.Dialect().Name(),
		"version": h.version,
	})
}
