package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// TitleHandler handles software title endpoints
type TitleHandler struct {
	BaseHandler
	repo *persistence.TitleRepository
}

// NewTitleHandler creates a new TitleHandler
func NewTitleHandler(repo *persistence.TitleRepository) *TitleHandler {
	return &TitleHandler{repo: repo}
}

// List handles GET /api/titles. Supports vendor, status and search filters.
func (h *TitleHandler) List(c *gin.Context) {
	filter := catalog.TitleFilter{
		Vendor: c.Query("vendor"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	rows, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/titles/:id. The detail payload carries the title's
// licenses (with their support contract rollup) and attachments.
func (h *TitleHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	detail, err := h.repo.Detail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// Create handles POST /api/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var in catalog.TitleInput
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

// Update handles PUT /api/titles/:id
func (h *TitleHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var in catalog.TitleUpdate
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
