package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/config"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
	"github.com/sltrack/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// AttachmentHandler handles attachment upload, download and delete. File
// bytes live in the configured store; the database row carries metadata
// plus the store's FilePath value.
type AttachmentHandler struct {
	BaseHandler
	repo  *persistence.AttachmentRepository
	files storage.Store
	cfg   *config.StorageConfig
	log   *zap.Logger
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(repo *persistence.AttachmentRepository, files storage.Store, cfg *config.StorageConfig, log *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{repo: repo, files: files, cfg: cfg, log: log}
}

// List handles GET /api/attachments with optional titleId, licenseId and
// supportId query filters.
func (h *AttachmentHandler) List(c *gin.Context) {
	var filter licensing.AttachmentFilter
	var err error
	if filter.TitleID, err = queryID(c, "titleId"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.LicenseID, err = queryID(c, "licenseId"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.SupportID, err = queryID(c, "supportId"); err != nil {
		h.HandleError(c, err)
		return
	}
	rows, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Upload handles POST /api/attachments. Multipart form with a "file" part
// and exactly one of titleId, licenseId or supportId. The file row is
// written only after the bytes are safely in the store; a failed insert
// rolls the stored file back.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleError(c, shared.ErrValidation.WithMessage("file is required"))
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadSize {
		h.HandleError(c, shared.ErrValidation.WithMessage("file exceeds the %d byte upload limit", h.cfg.MaxUploadSize))
		return
	}

	originalName := storage.SanitizeName(fileHeader.Filename)
	if !storage.AllowedExtension(originalName, h.cfg.AllowedExtensions) {
		h.HandleError(c, shared.ErrValidation.WithMessage("file type not allowed"))
		return
	}

	rec := licensing.AttachmentRecord{
		FileName:     storage.StoredName(originalName),
		OriginalName: originalName,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
	}
	if rec.TitleID, err = formID(c, "titleId"); err != nil {
		h.HandleError(c, err)
		return
	}
	if rec.LicenseID, err = formID(c, "licenseId"); err != nil {
		h.HandleError(c, err)
		return
	}
	if rec.SupportID, err = formID(c, "supportId"); err != nil {
		h.HandleError(c, err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, shared.ErrValidation.WithMessage("unreadable upload"))
		return
	}
	defer src.Close()

	rec.FilePath, err = h.files.Save(c.Request.Context(), rec.FileName, src)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	row, err := h.repo.Create(c.Request.Context(), rec)
	if err != nil {
		if rmErr := h.files.Delete(c.Request.Context(), rec.FilePath); rmErr != nil {
			h.log.Warn("orphaned attachment file after failed insert",
				zap.String("file_path", rec.FilePath), zap.Error(rmErr))
		}
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Download handles GET /api/attachments/:id/download, streaming the stored
// bytes under the original filename.
func (h *AttachmentHandler) Download(c *gin.Context) {
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

	body, err := h.files.Open(c.Request.Context(), row.String("FilePath"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer body.Close()

	mimeType := row.String("MimeType")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+row.String("OriginalName")+`"`)
	c.Header("Content-Type", mimeType)
	if size := row.Int64("FileSize"); size > 0 {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		h.log.Warn("attachment download interrupted", zap.Int64("attachment_id", id), zap.Error(err))
	}
}

// Delete handles DELETE /api/attachments/:id. The row goes first; the
// stored file is removed best effort afterwards.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filePath, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.files.Delete(c.Request.Context(), filePath); err != nil {
		h.log.Warn("orphaned attachment file after delete",
			zap.Int64("attachment_id", id),
			zap.String("file_path", filePath),
			zap.Error(err))
	}
	h.Success(c, gin.H{"deleted": true})
}

// formID reads an optional positive integer form field.
func formID(c *gin.Context, name string) (*int64, error) {
	return parseOptionalID(c.PostForm(name), name)
}

// queryID reads an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*int64, error) {
	return parseOptionalID(c.Query(name), name)
}

func parseOptionalID(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, shared.ErrValidation.WithMessage("invalid %s parameter", name)
	}
	return &id, nil
}
