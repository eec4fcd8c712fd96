package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// defaultExpirationWindow is the lookahead for the expirations report when
// the caller does not pass one.
const defaultExpirationWindow = 60

// ReportHandler handles the reporting endpoints
type ReportHandler struct {
	BaseHandler
	repo *persistence.ReportRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(repo *persistence.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// Expirations handles GET /api/reports/expirations?days=N
func (h *ReportHandler) Expirations(c *gin.Context) {
	days := defaultExpirationWindow
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.HandleError(c, shared.ErrValidation.WithMessage("invalid days parameter"))
			return
		}
		days = parsed
	}
	rows, err := h.repo.Expirations(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Inventory handles GET /api/reports/inventory
func (h *ReportHandler) Inventory(c *gin.Context) {
	rows, err := h.repo.Inventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// SpendByCostCenter handles GET /api/reports/spend-by-cost-center
func (h *ReportHandler) SpendByCostCenter(c *gin.Context) {
	rows, err := h.repo.SpendByCostCenter(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
