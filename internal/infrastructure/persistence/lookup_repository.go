package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/settings"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// LookupRepository serves the cost center and currency reference tables.
type LookupRepository struct {
	db database.Executor
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(db database.Executor) *LookupRepository {
	return &LookupRepository{db: db}
}

// CostCenters returns the active cost centers ordered by name.
func (r *LookupRepository) CostCenters(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `SELECT * FROM CostCenters WHERE IsActive = 1 ORDER BY Name ASC`)
}

// CreateCostCenter inserts a cost center and returns the stored row.
func (r *LookupRepository) CreateCostCenter(ctx context.Context, in settings.CostCenterInput) (database.Row, error) {
	res, err := r.db.Run(ctx,
		`INSERT INTO CostCenters (Name, Department) VALUES (?, ?)`,
		in.Name, strOrNil(in.Department))
	if err != nil {
		return nil, err
	}
	return r.db.Get(ctx, `SELECT * FROM CostCenters WHERE CostCenterID = ?`, res.LastInsertID)
}

// Currencies returns every currency ordered by code.
func (r *LookupRepository) Currencies(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `SELECT * FROM Currencies ORDER BY CurrencyCode ASC`)
}
