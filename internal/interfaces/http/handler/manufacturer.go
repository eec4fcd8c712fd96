package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// ManufacturerHandler handles manufacturer endpoints
type ManufacturerHandler struct {
	BaseHandler
	repo *persistence.ManufacturerRepository
}

// NewManufacturerHandler creates a new ManufacturerHandler
func NewManufacturerHandler(repo *persistence.ManufacturerRepository) *ManufacturerHandler {
	return &ManufacturerHandler{repo: repo}
}

// List handles GET /api/manufacturers
func (h *ManufacturerHandler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/manufacturers/:id
func (h *ManufacturerHandler) Get(c *gin.Context) {
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

// Create handles POST /api/manufacturers
func (h *ManufacturerHandler) Create(c *gin.Context) {
	var in catalog.ManufacturerInput
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

// Update handles PUT /api/manufacturers/:id
func (h *ManufacturerHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var in catalog.ManufacturerUpdate
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

// Delete handles DELETE /api/manufacturers/:id
func (h *ManufacturerHandler) Delete(c *gin.Context) {
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
