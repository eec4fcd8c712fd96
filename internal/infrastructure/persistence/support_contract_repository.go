package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// SupportContractRepository provides CRUD over SupportContracts, enforcing
// the one-contract-per-license rule.
type SupportContractRepository struct {
	db database.Executor
}

// NewSupportContractRepository creates a new SupportContractRepository.
func NewSupportContractRepository(db database.Executor) *SupportContractRepository {
	return &SupportContractRepository{db: db}
}

// List returns contracts joined with license and title context, soonest
// expiry first. A zero licenseID lists everything.
func (r *SupportContractRepository) List(ctx context.Context, licenseID int64) ([]database.Row, error) {
	query := `
		SELECT sc.*, l.PONumber AS LicensePONumber, l.LicenseType, t.TitleName, m.Name AS ManufacturerName
		FROM SupportContracts sc
		JOIN Licenses l ON sc.LicenseID = l.LicenseID
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		WHERE 1=1`
	var args []any

	if licenseID != 0 {
		query += ` AND sc.LicenseID = ?`
		args = append(args, licenseID)
	}

	query += ` ORDER BY sc.EndDate ASC`
	return r.db.Query(ctx, query, args...)
}

// FindByID returns one contract with license and title context, or
// ErrNotFound.
func (r *SupportContractRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `
		SELECT sc.*, l.PONumber AS LicensePONumber, l.LicenseType, t.TitleName
		FROM SupportContracts sc
		JOIN Licenses l ON sc.LicenseID = l.LicenseID
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		WHERE sc.SupportID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("support contract %d not found", id)
	}
	return row, nil
}

// Create inserts a contract. A license that already carries one yields a
// conflict and leaves the existing contract untouched.
func (r *SupportContractRepository) Create(ctx context.Context, in licensing.SupportContractInput) (database.Row, error) {
	existing, err := r.db.Get(ctx, `SELECT SupportID FROM SupportContracts WHERE LicenseID = ?`, in.LicenseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrConflict.WithMessage("a support contract already exists for this license")
	}

	currency := "USD"
	if in.CurrencyCode != nil && *in.CurrencyCode != "" {
		currency = *in.CurrencyCode
	}

	res, err := r.db.Run(ctx, `
		INSERT INTO SupportContracts (LicenseID, PONumber, VendorName, StartDate, EndDate, Cost, CurrencyCode, CostCenter, Notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.LicenseID, in.PONumber, strOrNil(in.VendorName), strOrNil(in.StartDate),
		in.EndDate, f64OrNil(in.Cost), currency, strOrNil(in.CostCenter), strOrNil(in.Notes))
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM SupportContracts WHERE SupportID = ?`, res.LastInsertID)
}

// Update applies a partial update, keeping stored values for nil fields.
func (r *SupportContractRepository) Update(ctx context.Context, id int64, in licensing.SupportContractUpdate) (database.Row, error) {
	existing, err := r.db.Get(ctx, `SELECT * FROM SupportContracts WHERE SupportID = ?`, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, shared.ErrNotFound.WithMessage("support contract %d not found", id)
	}

	_, err = r.db.Run(ctx, `
		UPDATE SupportContracts SET PONumber = ?, VendorName = ?, StartDate = ?, EndDate = ?, Cost = ?, CurrencyCode = ?, CostCenter = ?, Notes = ?
		WHERE SupportID = ?`,
		mergeStr(in.PONumber, existing, "PONumber"),
		mergeStr(in.VendorName, existing, "VendorName"),
		mergeStr(in.StartDate, existing, "StartDate"),
		mergeStr(in.EndDate, existing, "EndDate"),
		mergeFloat64(in.Cost, existing, "Cost"),
		mergeStr(in.CurrencyCode, existing, "CurrencyCode"),
		mergeStr(in.CostCenter, existing, "CostCenter"),
		mergeStr(in.Notes, existing, "Notes"),
		id)
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM SupportContracts WHERE SupportID = ?`, id)
}

// Delete removes a contract or returns ErrNotFound.
func (r *SupportContractRepository) Delete(ctx context.Context, id int64) error {
	existing, err := r.db.Get(ctx, `SELECT SupportID FROM SupportContracts WHERE SupportID = ?`, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return shared.ErrNotFound.WithMessage("support contract %d not found", id)
	}

	_, err = r.db.Run(ctx, `DELETE FROM SupportContracts WHERE SupportID = ?`, id)
	return err
}
