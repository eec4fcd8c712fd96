package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/sltrack/backend/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) database.Executor {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedTitle(t *testing.T, db database.Executor, name string) int64 {
	t.Helper()
	repo := NewTitleRepository(db)
	row, err := repo.Create(context.Background(), catalog.TitleInput{TitleName: name})
	require.NoError(t, err)
	return row.Int64("TitleID")
}

func seedLicense(t *testing.T, db database.Executor, titleID int64, po string) int64 {
	t.Helper()
	repo := NewLicenseRepository(db)
	row, err := repo.Create(context.Background(), licensing.LicenseInput{
		TitleID:     titleID,
		PONumber:    po,
		LicenseType: "Subscription",
	})
	require.NoError(t, err)
	return row.Int64("LicenseID")
}

// dateFromNow renders a date N days from today the way license dates are
// stored.
func dateFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func strPtr(s string) *string    { return &s }
func i64Ptr(n int64) *int64      { return &n }
func f64Ptr(f float64) *float64  { return &f }
func boolPtr(b bool) *bool       { return &b }
