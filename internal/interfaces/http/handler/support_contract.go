package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// SupportContractHandler handles support contract endpoints
type SupportContractHandler struct {
	BaseHandler
	repo *persistence.SupportContractRepository
}

// NewSupportContractHandler creates a new SupportContractHandler
func NewSupportContractHandler(repo *persistence.SupportContractRepository) *SupportContractHandler {
	return &SupportContractHandler{repo: repo}
}

// List handles GET /api/support-contracts. An optional licenseId query
// narrows the list to one license.
func (h *SupportContractHandler) List(c *gin.Context) {
	licenseID, err := optionalID(c, "licenseId")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rows, err := h.repo.List(c.Request.Context(), licenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/support-contracts/:id
func (h *SupportContractHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	row, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Create handles POST /api/support-contracts. A license carries at most
// one contract; a second create answers 409.
func (h *SupportContractHandler) Create(c *gin.Context) {
	var in licensing.SupportContractInput
	if !h.BindJSON(c, &in) {
		return
	}
	row, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Update handles PUT /api/support-contracts/:id
func (h *SupportContractHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var in licensing.SupportContractUpdate
	if !h.BindJSON(c, &in) {
		return
	}
	row, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Delete handles DELETE /api/support-contracts/:id
func (h *SupportContractHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}
