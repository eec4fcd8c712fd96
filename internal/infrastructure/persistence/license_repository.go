package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// LicenseRepository provides CRUD over Licenses, including the cascading
// transactional delete that also removes the license's support contract and
// attachments.
type LicenseRepository struct {
	db database.Executor
}

// NewLicenseRepository creates a new LicenseRepository.
func NewLicenseRepository(db database.Executor) *LicenseRepository {
	return &LicenseRepository{db: db}
}

// LicenseDetail is one license with its optional support contract and
// attachments. SupportContract is nil when the license carries none.
type LicenseDetail struct {
	License         database.Row
	SupportContract database.Row
	Attachments     []database.Row
}

// List returns licenses joined with title, manufacturer and support contract
// summary columns, newest purchase first. A zero titleID lists everything.
func (r *LicenseRepository) List(ctx context.Context, titleID int64) ([]database.Row, error) {
	query := `
		SELECT l.*, t.TitleName, m.Name AS ManufacturerName,
			sc.SupportID, sc.EndDate AS SupportEndDate, sc.PONumber AS SupportPONumber
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		LEFT JOIN SupportContracts sc ON sc.LicenseID = l.LicenseID
		WHERE 1=1`
	var args []any

	if titleID != 0 {
		query += ` AND l.TitleID = ?`
		args = append(args, titleID)
	}

	query += ` ORDER BY l.PurchaseDate DESC`
	return r.db.Query(ctx, query, args...)
}

// FindByID returns one license with title and manufacturer names, or
// ErrNotFound.
func (r *LicenseRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `
		SELECT l.*, t.TitleName, m.Name AS ManufacturerName
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		WHERE l.LicenseID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("license %d not found", id)
	}
	return row, nil
}

// Detail returns one license with its support contract and attachments.
func (r *LicenseRepository) Detail(ctx context.Context, id int64) (*LicenseDetail, error) {
	license, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contract, err := r.db.Get(ctx, `SELECT * FROM SupportContracts WHERE LicenseID = ?`, id)
	if err != nil {
		return nil, err
	}

	attachments, err := r.db.Query(ctx,
		`SELECT * FROM Attachments WHERE LicenseID = ? ORDER BY UploadDate DESC`, id)
	if err != nil {
		return nil, err
	}

	return &LicenseDetail{License: license, SupportContract: contract, Attachments: attachments}, nil
}

// Create inserts a license and returns the stored row. Quantity defaults to
// 1 and CurrencyCode to USD when omitted.
func (r *LicenseRepository) Create(ctx context.Context, in licensing.LicenseInput) (database.Row, error) {
	quantity := int64(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	currency := "USD"
	if in.CurrencyCode != nil && *in.CurrencyCode != "" {
		currency = *in.CurrencyCode
	}

	res, err := r.db.Run(ctx, `
		INSERT INTO Licenses (TitleID, PONumber, LicenseType, Quantity, CurrencyCode, Cost, CostCenter, LicenseKey, PurchaseDate, ExpirationDate, AssetMapping, Notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.TitleID, in.PONumber, in.LicenseType, quantity, currency,
		f64OrNil(in.Cost), strOrNil(in.CostCenter), strOrNil(in.LicenseKey),
		strOrNil(in.PurchaseDate), strOrNil(in.ExpirationDate),
		strOrNil(in.AssetMapping), strOrNil(in.Notes))
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM Licenses WHERE LicenseID = ?`, res.LastInsertID)
}

// Update applies a partial update, keeping stored values for nil fields.
func (r *LicenseRepository) Update(ctx context.Context, id int64, in licensing.LicenseUpdate) (database.Row, error) {
	existing, err := r.db.Get(ctx, `SELECT * FROM Licenses WHERE LicenseID = ?`, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, shared.ErrNotFound.WithMessage("license %d not found", id)
	}

	_, err = r.db.Run(ctx, `
		UPDATE Licenses SET PONumber = ?, LicenseType = ?, Quantity = ?, CurrencyCode = ?, Cost = ?, CostCenter = ?, LicenseKey = ?, PurchaseDate = ?, ExpirationDate = ?, AssetMapping = ?, Notes = ?
		WHERE LicenseID = ?`,
		mergeStr(in.PONumber, existing, "PONumber"),
		mergeStr(in.LicenseType, existing, "LicenseType"),
		mergeInt64(in.Quantity, existing, "Quantity"),
		mergeStr(in.CurrencyCode, existing, "CurrencyCode"),
		mergeFloat64(in.Cost, existing, "Cost"),
		mergeStr(in.CostCenter, existing, "CostCenter"),
		mergeStr(in.LicenseKey, existing, "LicenseKey"),
		mergeStr(in.PurchaseDate, existing, "PurchaseDate"),
		mergeStr(in.ExpirationDate, existing, "ExpirationDate"),
		mergeStr(in.AssetMapping, existing, "AssetMapping"),
		mergeStr(in.Notes, existing, "Notes"),
		id)
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM Licenses WHERE LicenseID = ?`, id)
}

// Delete removes a license together with its support contract and
// attachment rows in one transaction. It returns the stored file paths of
// the removed attachments so the caller can delete the files after the
// transaction has committed; file removal never happens inside the
// transaction, so a failed commit leaves every file in place.
func (r *LicenseRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var paths []string
	err := r.db.Transaction(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT FilePath FROM Attachments WHERE LicenseID = ?`, id)
		if err != nil {
			return err
		}
		for _, row := range rows {
			paths = append(paths, row.String("FilePath"))
		}

		if _, err := q.Run(ctx, `DELETE FROM SupportContracts WHERE LicenseID = ?`, id); err != nil {
			return err
		}
		if _, err := q.Run(ctx, `DELETE FROM Attachments WHERE LicenseID = ?`, id); err != nil {
			return err
		}
		_, err = q.Run(ctx, `DELETE FROM Licenses WHERE LicenseID = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
