package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// TitleRepository provides CRUD and filtered listing over SoftwareTitles.
type TitleRepository struct {
	db database.Executor
}

// NewTitleRepository creates a new TitleRepository.
func NewTitleRepository(db database.Executor) *TitleRepository {
	return &TitleRepository{db: db}
}

// TitleDetail is one title with its licenses and attachments.
type TitleDetail struct {
	Title       database.Row
	Licenses    []database.Row
	Attachments []database.Row
}

// List returns titles with vendor names, license roll-ups and status,
// narrowed by the filter. Active titles sort before decommissioned ones.
func (r *TitleRepository) List(ctx context.Context, filter catalog.TitleFilter) ([]database.Row, error) {
	d := r.db.Dialect()

	query := `
		SELECT t.*, m.Name AS ManufacturerName, r.Name AS ResellerName,
			(SELECT SUM(l.Quantity) FROM Licenses l WHERE l.TitleID = t.TitleID) AS TotalLicenses,
			CASE WHEN t.IsDecommissioned = 1 THEN 'Decommissioned' ELSE 'Active' END AS Status,
			(SELECT ` + d.GroupConcat("DISTINCT l.LicenseType") + ` FROM Licenses l WHERE l.TitleID = t.TitleID) AS LicenseTypes
		FROM SoftwareTitles t
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		LEFT JOIN Resellers r ON t.ResellerID = r.ResellerID
		WHERE 1=1`
	var args []any

	if filter.Vendor != "" && filter.Vendor != "all" {
		query += ` AND m.ManufacturerID = ?`
		args = append(args, filter.Vendor)
	}
	switch filter.Status {
	case "active":
		query += ` AND t.IsDecommissioned = 0`
	case "decommissioned":
		query += ` AND t.IsDecommissioned = 1`
	}
	if filter.Search != "" {
		query += ` AND (t.TitleName LIKE ? OR m.Name LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY t.IsDecommissioned ASC, t.TitleName ASC`
	return r.db.Query(ctx, query, args...)
}

// FindByID returns one title with vendor names, or ErrNotFound.
func (r *TitleRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `
		SELECT t.*, m.Name AS ManufacturerName, r.Name AS ResellerName
		FROM SoftwareTitles t
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		LEFT JOIN Resellers r ON t.ResellerID = r.ResellerID
		WHERE t.TitleID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("title %d not found", id)
	}
	return row, nil
}

// Detail returns one title with its licenses (each annotated with support
// contract summary columns) and attachments.
func (r *TitleRepository) Detail(ctx context.Context, id int64) (*TitleDetail, error) {
	title, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	licenses, err := r.db.Query(ctx, `
		SELECT l.*,
			(SELECT sc.SupportID FROM SupportContracts sc WHERE sc.LicenseID = l.LicenseID) AS SupportID,
			(SELECT sc.EndDate FROM SupportContracts sc WHERE sc.LicenseID = l.LicenseID) AS SupportEndDate,
			(SELECT sc.PONumber FROM SupportContracts sc WHERE sc.LicenseID = l.LicenseID) AS SupportPONumber
		FROM Licenses l
		WHERE l.TitleID = ?
		ORDER BY l.PurchaseDate ASC`, id)
	if err != nil {
		return nil, err
	}

	attachments, err := r.db.Query(ctx,
		`SELECT * FROM Attachments WHERE TitleID = ? ORDER BY UploadDate DESC`, id)
	if err != nil {
		return nil, err
	}

	return &TitleDetail{Title: title, Licenses: licenses, Attachments: attachments}, nil
}

// Create inserts a title and returns the stored row.
func (r *TitleRepository) Create(ctx context.Context, in catalog.TitleInput) (database.Row, error) {
	res, err := r.db.Run(ctx, `
		INSERT INTO SoftwareTitles (TitleName, ManufacturerID, ResellerID, Category, Notes)
		VALUES (?, ?, ?, ?, ?)`,
		in.TitleName, i64OrNil(in.ManufacturerID), i64OrNil(in.ResellerID),
		strOrNil(in.Category), strOrNil(in.Notes))
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM SoftwareTitles WHERE TitleID = ?`, res.LastInsertID)
}

// Update applies a partial update, keeping stored values for nil fields.
func (r *TitleRepository) Update(ctx context.Context, id int64, in catalog.TitleUpdate) (database.Row, error) {
	existing, err := r.db.Get(ctx, `SELECT * FROM SoftwareTitles WHERE TitleID = ?`, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, shared.ErrNotFound.WithMessage("title %d not found", id)
	}

	_, err = r.db.Run(ctx, `
		UPDATE SoftwareTitles
		SET TitleName = ?, ManufacturerID = ?, ResellerID = ?, Category = ?, Notes = ?, IsDecommissioned = ?
		WHERE TitleID = ?`,
		mergeStr(in.TitleName, existing, "TitleName"),
		mergeInt64(in.ManufacturerID, existing, "ManufacturerID"),
		mergeInt64(in.ResellerID, existing, "ResellerID"),
		mergeStr(in.Category, existing, "Category"),
		mergeStr(in.Notes, existing, "Notes"),
		mergeBool(in.IsDecommissioned, existing, "IsDecommissioned"),
		id)
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM SoftwareTitles WHERE TitleID = ?`, id)
}
