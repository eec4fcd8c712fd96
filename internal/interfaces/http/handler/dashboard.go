package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// DashboardHandler handles the dashboard overview endpoint
type DashboardHandler struct {
	BaseHandler
	repo *persistence.DashboardRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(repo *persistence.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo}
}

// Overview handles GET /api/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.repo.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}
