package persistence

import (
	"context"
	"testing"

	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardExpirationWindows(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleID := seedTitle(t, db, "Photoshop")
	licRepo := NewLicenseRepository(db)

	// One license expiring in 20 days, one in 45, one with no expiry.
	_, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-20", LicenseType: "Subscription",
		ExpirationDate: strPtr(dateFromNow(20)),
	})
	require.NoError(t, err)
	_, err = licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-45", LicenseType: "Subscription",
		ExpirationDate: strPtr(dateFromNow(45)),
	})
	require.NoError(t, err)
	_, err = licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-NONE", LicenseType: "Perpetual",
	})
	require.NoError(t, err)

	repo := NewDashboardRepository(db)
	overview, err := repo.Overview(ctx)
	require.NoError(t, err)

	// 20 days falls in the 30-day window; 45 days only in the 60-day one.
	assert.Equal(t, int64(1), overview.Expirations30Days)
	assert.Equal(t, int64(2), overview.Expirations60Days)
	assert.Len(t, overview.UpcomingExpirations, 2)
	assert.Equal(t, int64(1), overview.TotalActiveTitles)
}

func TestDashboardExcludesDecommissionedTitles(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleID := seedTitle(t, db, "Old Tool")
	licRepo := NewLicenseRepository(db)

	_, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-OLD", LicenseType: "Subscription",
		Cost:           f64Ptr(100),
		ExpirationDate: strPtr(dateFromNow(10)),
	})
	require.NoError(t, err)

	_, err = db.Run(ctx, `UPDATE SoftwareTitles SET IsDecommissioned = 1 WHERE TitleID = ?`, titleID)
	require.NoError(t, err)

	repo := NewDashboardRepository(db)
	overview, err := repo.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(0), overview.Expirations30Days)
	assert.Empty(t, overview.LicensingOverview)
	assert.Equal(t, int64(0), overview.TotalActiveTitles)
	assert.Equal(t, 0.0, overview.TotalSpend)
}

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleID := seedTitle(t, db, "Photoshop")
	licRepo := NewLicenseRepository(db)

	_, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-1", LicenseType: "Perpetual",
		Quantity: i64Ptr(5), Cost: f64Ptr(1000), CostCenter: strPtr("CC-ENG"),
	})
	require.NoError(t, err)
	_, err = licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-2", LicenseType: "Subscription",
		Quantity: i64Ptr(2), Cost: f64Ptr(500), CostCenter: strPtr("CC-FIN"),
	})
	require.NoError(t, err)

	repo := NewDashboardRepository(db)
	overview, err := repo.Overview(ctx)
	require.NoError(t, err)

	require.Len(t, overview.LicensingOverview, 2)
	require.Len(t, overview.CostByDepartment, 2)
	assert.Equal(t, "CC-ENG", overview.CostByDepartment[0].String("CostCenter"))
	assert.InDelta(t, 1500.0, overview.TotalSpend, 0.001)
}
