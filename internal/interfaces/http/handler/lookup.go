package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/settings"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// LookupHandler handles the cost center and currency lookup endpoints
type LookupHandler struct {
	BaseHandler
	repo *persistence.LookupRepository
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(repo *persistence.LookupRepository) *LookupHandler {
	return &LookupHandler{repo: repo}
}

// CostCenters handles GET /api/cost-centers
func (h *LookupHandler) CostCenters(c *gin.Context) {
	rows, err := h.repo.CostCenters(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CreateCostCenter handles POST /api/cost-centers
func (h *LookupHandler) CreateCostCenter(c *gin.Context) {
	var in settings.CostCenterInput
	if !h.BindJSON(c, &in) {
		return
	}
	row, err := h.repo.CreateCostCenter(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Currencies handles GET /api/currencies
func (h *LookupHandler) Currencies(c *gin.Context) {
	rows, err := h.repo.Currencies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
