package persistence

import (
	"context"
	"testing"

	"github.com/sltrack/backend/internal/domain/catalog"
	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleListFilters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleRepo := NewTitleRepository(db)
	mfgRepo := NewManufacturerRepository(db)

	adobe, err := mfgRepo.Create(ctx, catalog.ManufacturerInput{Name: "Adobe"})
	require.NoError(t, err)
	adobeID := adobe.Int64("ManufacturerID")

	_, err = titleRepo.Create(ctx, catalog.TitleInput{
		TitleName: "Photoshop", ManufacturerID: i64Ptr(adobeID),
	})
	require.NoError(t, err)
	autocad, err := titleRepo.Create(ctx, catalog.TitleInput{TitleName: "AutoCAD"})
	require.NoError(t, err)

	_, err = titleRepo.Update(ctx, autocad.Int64("TitleID"), catalog.TitleUpdate{
		IsDecommissioned: boolPtr(true),
	})
	require.NoError(t, err)

	t.Run("active only", func(t *testing.T) {
		rows, err := titleRepo.List(ctx, catalog.TitleFilter{Status: "active"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Photoshop", rows[0].String("TitleName"))
		assert.Equal(t, "Active", rows[0].String("Status"))
	})

	t.Run("decommissioned only", func(t *testing.T) {
		rows, err := titleRepo.List(ctx, catalog.TitleFilter{Status: "decommissioned"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "AutoCAD", rows[0].String("TitleName"))
		assert.Equal(t, "Decommissioned", rows[0].String("Status"))
	})

	t.Run("search matches title or manufacturer name", func(t *testing.T) {
		rows, err := titleRepo.List(ctx, catalog.TitleFilter{Search: "adob"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Photoshop", rows[0].String("TitleName"))
	})

	t.Run("vendor filter", func(t *testing.T) {
		rows, err := titleRepo.List(ctx, catalog.TitleFilter{Vendor: "all"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		rows, err = titleRepo.List(ctx, catalog.TitleFilter{Vendor: "999"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("active titles sort before decommissioned", func(t *testing.T) {
		rows, err := titleRepo.List(ctx, catalog.TitleFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Photoshop", rows[0].String("TitleName"))
	})
}

func TestTitleListRollsUpLicenses(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleRepo := NewTitleRepository(db)
	licRepo := NewLicenseRepository(db)

	titleID := seedTitle(t, db, "Photoshop")
	_, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-1", LicenseType: "Perpetual", Quantity: i64Ptr(5),
	})
	require.NoError(t, err)
	_, err = licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-2", LicenseType: "Subscription", Quantity: i64Ptr(3),
	})
	require.NoError(t, err)

	rows, err := titleRepo.List(ctx, catalog.TitleFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(8), rows[0].Int64("TotalLicenses"))
	assert.Contains(t, rows[0].String("LicenseTypes"), "Perpetual")
	assert.Contains(t, rows[0].String("LicenseTypes"), "Subscription")
}

func TestTitleDetail(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleRepo := NewTitleRepository(db)

	titleID := seedTitle(t, db, "Photoshop")
	licenseID := seedLicense(t, db, titleID, "PO-1")

	scRepo := NewSupportContractRepository(db)
	_, err := scRepo.Create(ctx, licensing.SupportContractInput{
		LicenseID: licenseID, PONumber: "PO-SC", EndDate: dateFromNow(365),
	})
	require.NoError(t, err)

	detail, err := titleRepo.Detail(ctx, titleID)
	require.NoError(t, err)
	assert.Equal(t, "Photoshop", detail.Title.String("TitleName"))
	require.Len(t, detail.Licenses, 1)
	assert.Equal(t, "PO-SC", detail.Licenses[0].String("SupportPONumber"))
	assert.Empty(t, detail.Attachments)
}
