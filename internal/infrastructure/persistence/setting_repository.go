package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/settings"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// SettingRepository provides the AppSettings key/value store. Settings are
// upserted by key; bulk updates are all-or-nothing.
type SettingRepository struct {
	db database.Executor
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(db database.Executor) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns every setting ordered by key.
func (r *SettingRepository) List(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `SELECT * FROM AppSettings ORDER BY SettingKey ASC`)
}

// FindByKey returns one setting or ErrNotFound.
func (r *SettingRepository) FindByKey(ctx context.Context, key string) (database.Row, error) {
	row, err := r.db.Get(ctx, `SELECT * FROM AppSettings WHERE SettingKey = ?`, key)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("setting %q not found", key)
	}
	return row, nil
}

// Upsert stores one value by key, inserting the key when it is new, and
// returns the stored row.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (database.Row, error) {
	if err := upsertSetting(ctx, r.db, key, value); err != nil {
		return nil, err
	}
	return r.FindByKey(ctx, key)
}

// BulkUpsert applies every entry inside one transaction and returns the full
// setting list. A failure on any entry leaves all settings unchanged.
func (r *SettingRepository) BulkUpsert(ctx context.Context, entries []settings.Entry) ([]database.Row, error) {
	err := r.db.Transaction(ctx, func(q database.Querier) error {
		for _, e := range entries {
			if err := upsertSetting(ctx, q, e.SettingKey, e.SettingValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.List(ctx)
}

func upsertSetting(ctx context.Context, q database.Querier, key, value string) error {
	res, err := q.Run(ctx,
		`UPDATE AppSettings SET SettingValue = ?, UpdatedDate = CURRENT_TIMESTAMP WHERE SettingKey = ?`,
		value, key)
	if err != nil {
		return err
	}
	if res.RowsAffected > 0 {
		return nil
	}
	_, err = q.Run(ctx, `INSERT INTO AppSettings (SettingKey, SettingValue) VALUES (?, ?)`, key, value)
	return err
}
