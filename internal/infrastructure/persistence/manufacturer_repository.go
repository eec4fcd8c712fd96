// Package persistence implements one repository per entity over the
// dialect-neutral executor. Queries are written once with ?-positional
// placeholders; rows flow back as column-keyed maps so the API serves the
// schema's column names directly.
package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// ManufacturerRepository provides CRUD over the Manufacturers table.
type ManufacturerRepository struct {
	db database.Executor
}

// NewManufacturerRepository creates a new ManufacturerRepository.
func NewManufacturerRepository(db database.Executor) *ManufacturerRepository {
	return &ManufacturerRepository{db: db}
}

// List returns all manufacturers with a count of referencing titles.
func (r *ManufacturerRepository) List(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `
		SELECT m.*,
			(SELECT COUNT(*) FROM SoftwareTitles t WHERE t.ManufacturerID = m.ManufacturerID) AS TitleCount
		FROM Manufacturers m
		ORDER BY m.Name ASC`)
}

// FindByID returns one manufacturer or ErrNotFound.
func (r *ManufacturerRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `SELECT * FROM Manufacturers WHERE ManufacturerID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("manufacturer %d not found", id)
	}
	return row, nil
}

// Create inserts a manufacturer and returns the stored row.
func (r *ManufacturerRepository) Create(ctx context.Context, in catalog.ManufacturerInput) (database.Row, error) {
	res, err := r.db.Run(ctx,
		`INSERT INTO Manufacturers (Name, Website, ContactEmail) VALUES (?, ?, ?)`,
		in.Name, strOrNil(in.Website), strOrNil(in.ContactEmail))
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, res.LastInsertID)
}

// Update applies a partial update, keeping stored values for nil fields.
func (r *ManufacturerRepository) Update(ctx context.Context, id int64, in catalog.ManufacturerUpdate) (database.Row, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Run(ctx,
		`UPDATE Manufacturers SET Name = ?, Website = ?, ContactEmail = ? WHERE ManufacturerID = ?`,
		mergeStr(in.Name, existing, "Name"),
		mergeStr(in.Website, existing, "Website"),
		mergeStr(in.ContactEmail, existing, "ContactEmail"),
		id)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes a manufacturer. It fails with a conflict while any software
// title still references it.
func (r *ManufacturerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}

	row, err := r.db.Get(ctx, `SELECT COUNT(*) AS n FROM SoftwareTitles WHERE ManufacturerID = ?`, id)
	if err != nil {
		return err
	}
	if row.Int64("n") > 0 {
		return shared.ErrConflict.WithMessage("cannot delete manufacturer with associated software titles")
	}

	_, err = r.db.Run(ctx, `DELETE FROM Manufacturers WHERE ManufacturerID = ?`, id)
	return err
}
