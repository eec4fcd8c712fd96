package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/settings"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
)

// SettingHandler handles application setting endpoints
type SettingHandler struct {
	BaseHandler
	repo *persistence.SettingRepository
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(repo *persistence.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

// List handles GET /api/settings
func (h *SettingHandler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/settings/:key
func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.HandleError(c, shared.ErrValidation.WithMessage("invalid key parameter"))
		return
	}
	row, err := h.repo.FindByKey(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Put handles PUT /api/settings/:key, creating or replacing one setting.
func (h *SettingHandler) Put(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.HandleError(c, shared.ErrValidation.WithMessage("invalid key parameter"))
		return
	}
	var body struct {
		SettingValue string `json:"SettingValue"`
	}
	if !h.BindJSON(c, &body) {
		return
	}
	row, err := h.repo.Upsert(c.Request.Context(), key, body.SettingValue)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// BulkPut handles PUT /api/settings, upserting a batch of entries in one
// transaction and returning the full settings list.
func (h *SettingHandler) BulkPut(c *gin.Context) {
	var entries []settings.Entry
	if !h.BindJSON(c, &entries) {
		return
	}
	if len(entries) == 0 {
		h.HandleError(c, shared.ErrValidation.WithMessage("at least one setting is required"))
		return
	}
	rows, err := h.repo.BulkUpsert(c.Request.Context(), entries)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
