package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// ResellerRepository provides CRUD over the Resellers table.
type ResellerRepository struct {
	db database.Executor
}

// NewResellerRepository creates a new ResellerRepository.
func NewResellerRepository(db database.Executor) *ResellerRepository {
	return &ResellerRepository{db: db}
}

// List returns all resellers with a count of referencing titles.
func (r *ResellerRepository) List(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `
		SELECT r.*,
			(SELECT COUNT(*) FROM SoftwareTitles t WHERE t.ResellerID = r.ResellerID) AS TitleCount
		FROM Resellers r
		ORDER BY r.Name ASC`)
}

// FindByID returns one reseller or ErrNotFound.
func (r *ResellerRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `SELECT * FROM Resellers WHERE ResellerID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("reseller %d not found", id)
	}
	return row, nil
}

// Create inserts a reseller and returns the stored row.
func (r *ResellerRepository) Create(ctx context.Context, in catalog.ResellerInput) (database.Row, error) {
	res, err := r.db.Run(ctx,
		`INSERT INTO Resellers (Name, ContactName, ContactEmail, Phone) VALUES (?, ?, ?, ?)`,
		in.Name, strOrNil(in.ContactName), strOrNil(in.ContactEmail), strOrNil(in.Phone))
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, res.LastInsertID)
}

// Update applies a partial update, keeping stored values for nil fields.
func (r *ResellerRepository) Update(ctx context.Context, id int64, in catalog.ResellerUpdate) (database.Row, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Run(ctx,
		`UPDATE Resellers SET Name = ?, ContactName = ?, ContactEmail = ?, Phone = ? WHERE ResellerID = ?`,
		mergeStr(in.Name, existing, "Name"),
		mergeStr(in.ContactName, existing, "ContactName"),
		mergeStr(in.ContactEmail, existing, "ContactEmail"),
		mergeStr(in.Phone, existing, "Phone"),
		id)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes a reseller. It fails with a conflict while any software
// title still references it.
func (r *ResellerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}

	row, err := r.db.Get(ctx, `SELECT COUNT(*) AS n FROM SoftwareTitles WHERE ResellerID = ?`, id)
	if err != nil {
		return err
	}
	if row.Int64("n") > 0 {
		return shared.ErrConflict.WithMessage("cannot delete reseller with associated software titles")
	}

	_, err = r.db.Run(ctx, `DELETE FROM Resellers WHERE ResellerID = ?`, id)
	return err
}
