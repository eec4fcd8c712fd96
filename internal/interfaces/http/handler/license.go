package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
	"github.com/sltrack/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// LicenseHandler handles license endpoints
type LicenseHandler struct {
	BaseHandler
	repo  *persistence.LicenseRepository
	files storage.Store
	log   *zap.Logger
}

// NewLicenseHandler creates a new LicenseHandler
func NewLicenseHandler(repo *persistence.LicenseRepository, files storage.Store, log *zap.Logger) *LicenseHandler {
	return &LicenseHandler{repo: repo, files: files, log: log}
}

// List handles GET /api/licenses. An optional titleId query narrows the
// list to one software title.
func (h *LicenseHandler) List(c *gin.Context) {
	titleID, err := optionalID(c, "titleId")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rows, err := h.repo.List(c.Request.Context(), titleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/licenses/:id
func (h *LicenseHandler) Get(c *gin.Context) {
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

// Create handles POST /api/licenses
func (h *LicenseHandler) Create(c *gin.Context) {
	var in licensing.LicenseInput
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

// Update handles PUT /api/licenses/:id
func (h *LicenseHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var in licensing.LicenseUpdate
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

// Delete handles DELETE /api/licenses/:id. The row cascade (support
// contract and attachment rows) commits first; attachment files are
// removed afterwards, best effort, so a storage hiccup never leaves the
// database delete half done.
func (h *LicenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filePaths, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	for _, fp := range filePaths {
		if err := h.files.Delete(c.Request.Context(), fp); err != nil {
			h.log.Warn("orphaned attachment file after license delete",
				zap.Int64("license_id", id),
				zap.String("file_path", fp),
				zap.Error(err))
		}
	}
	h.Success(c, gin.H{"deleted": true})
}
