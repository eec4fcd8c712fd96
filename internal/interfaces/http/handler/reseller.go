package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// ResellerHandler handles reseller endpoints
type ResellerHandler struct {
	BaseHandler
	repo *persistence.ResellerRepository
}

// NewResellerHandler creates a new ResellerHandler
func NewResellerHandler(repo *persistence.ResellerRepository) *ResellerHandler {
	return &ResellerHandler{repo: repo}
}

// List handles GET /api/resellers
func (h *ResellerHandler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/resellers/:id
func (h *ResellerHandler) Get(c *gin.Context) {
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

// Create handles POST /api/resellers
func (h *ResellerHandler) Create(c *gin.Context) {
	var in catalog.ResellerInput
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

// Update handles PUT /api/resellers/:id
func (h *ResellerHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var in catalog.ResellerUpdate
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

// Delete handles DELETE /api/resellers/:id
func (h *ResellerHandler) Delete(c *gin.Context) {
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
