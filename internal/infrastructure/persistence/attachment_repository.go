package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// AttachmentRepository provides CRUD over Attachments. Every attachment
// must link to at least one existing parent entity.
type AttachmentRepository struct {
	db database.Executor
}

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository(db database.Executor) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// List returns attachments narrowed by parent, newest upload first.
func (r *AttachmentRepository) List(ctx context.Context, filter licensing.AttachmentFilter) ([]database.Row, error) {
	query := `SELECT * FROM Attachments WHERE 1=1`
	var args []any

	if filter.TitleID != nil {
		query += ` AND TitleID = ?`
		args = append(args, *filter.TitleID)
	}
	if filter.LicenseID != nil {
		query += ` AND LicenseID = ?`
		args = append(args, *filter.LicenseID)
	}
	if filter.SupportID != nil {
		query += ` AND SupportID = ?`
		args = append(args, *filter.SupportID)
	}

	query += ` ORDER BY UploadDate DESC`
	return r.db.Query(ctx, query, args...)
}

// FindByID returns one attachment or ErrNotFound.
func (r *AttachmentRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `SELECT * FROM Attachments WHERE AttachmentID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("attachment %d not found", id)
	}
	return row, nil
}

// Create inserts an attachment row. It validates that at least one parent
// link is present and that every referenced parent exists.
func (r *AttachmentRepository) Create(ctx context.Context, rec licensing.AttachmentRecord) (database.Row, error) {
	if !rec.HasParent() {
		return nil, shared.ErrValidation.WithMessage("attachment must reference a title, license or support contract")
	}
	if err := r.checkParent(ctx, `SELECT TitleID FROM SoftwareTitles WHERE TitleID = ?`, rec.TitleID, "title"); err != nil {
		return nil, err
	}
	if err := r.checkParent(ctx, `SELECT LicenseID FROM Licenses WHERE LicenseID = ?`, rec.LicenseID, "license"); err != nil {
		return nil, err
	}
	if err := r.checkParent(ctx, `SELECT SupportID FROM SupportContracts WHERE SupportID = ?`, rec.SupportID, "support contract"); err != nil {
		return nil, err
	}

	res, err := r.db.Run(ctx, `
		INSERT INTO Attachments (TitleID, LicenseID, SupportID, FileName, OriginalName, FilePath, FileSize, MimeType)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i64OrNil(rec.TitleID), i64OrNil(rec.LicenseID), i64OrNil(rec.SupportID),
		rec.FileName, rec.OriginalName, rec.FilePath, rec.FileSize, rec.MimeType)
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM Attachments WHERE AttachmentID = ?`, res.LastInsertID)
}

func (r *AttachmentRepository) checkParent(ctx context.Context, query string, id *int64, kind string) error {
	if id == nil {
		return nil
	}
	row, err := r.db.Get(ctx, query, *id)
	if err != nil {
		return err
	}
	if row == nil {
		return shared.ErrNotFound.WithMessage("%s %d not found", kind, *id)
	}
	return nil
}

// Delete removes the attachment row and returns its stored file path so the
// caller can remove the file afterwards.
func (r *AttachmentRepository) Delete(ctx context.Context, id int64) (string, error) {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if _, err := r.db.Run(ctx, `DELETE FROM Attachments WHERE AttachmentID = ?`, id); err != nil {
		return "", err
	}
	return row.String("FilePath"), nil
}
