package persistence

import (
	"context"
	"testing"

	"github.com/sltrack/backend/internal/domain/licensing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportExpirationsWindow(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleID := seedTitle(t, db, "Photoshop")
	licRepo := NewLicenseRepository(db)

	lic, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-SOON", LicenseType: "Subscription",
		ExpirationDate: strPtr(dateFromNow(15)),
	})
	require.NoError(t, err)
	_, err = licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-LATER", LicenseType: "Subscription",
		ExpirationDate: strPtr(dateFromNow(90)),
	})
	require.NoError(t, err)

	scRepo := NewSupportContractRepository(db)
	_, err = scRepo.Create(ctx, licensing.SupportContractInput{
		LicenseID: lic.Int64("LicenseID"), PONumber: "PO-SC", EndDate: dateFromNow(25),
	})
	require.NoError(t, err)

	repo := NewReportRepository(db)

	rows, err := repo.Expirations(ctx, 30)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Soonest first; the support contract row is typed as such.
	assert.Equal(t, "PO-SOON", rows[0].String("poNumber"))
	assert.Equal(t, "Support Contract", rows[1].String("licenseType"))

	rows, err = repo.Expirations(ctx, 120)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReportInventory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleID := seedTitle(t, db, "Photoshop")
	seedTitle(t, db, "Empty Title")
	licRepo := NewLicenseRepository(db)

	_, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-1", LicenseType: "Perpetual",
		Quantity: i64Ptr(4), Cost: f64Ptr(800),
	})
	require.NoError(t, err)

	repo := NewReportRepository(db)
	rows, err := repo.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]int{}
	for i, row := range rows {
		byName[row.String("TitleName")] = i
	}
	ps := rows[byName["Photoshop"]]
	assert.Equal(t, int64(1), ps.Int64("LicenseCount"))
	assert.Equal(t, int64(4), ps.Int64("TotalQuantity"))

	empty := rows[byName["Empty Title"]]
	assert.Equal(t, int64(0), empty.Int64("LicenseCount"))
}

func TestReportSpendByCostCenter(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	titleID := seedTitle(t, db, "Photoshop")
	licRepo := NewLicenseRepository(db)

	lic, err := licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-1", LicenseType: "Subscription",
		Quantity: i64Ptr(3), Cost: f64Ptr(300), CostCenter: strPtr("CC-ENG"),
	})
	require.NoError(t, err)
	_, err = licRepo.Create(ctx, licensing.LicenseInput{
		TitleID: titleID, PONumber: "PO-2", LicenseType: "Subscription",
		Quantity: i64Ptr(1), Cost: f64Ptr(50), CostCenter: strPtr("CC-FIN"),
	})
	require.NoError(t, err)

	scRepo := NewSupportContractRepository(db)
	_, err = scRepo.Create(ctx, licensing.SupportContractInput{
		LicenseID: lic.Int64("LicenseID"), PONumber: "PO-SC",
		EndDate: dateFromNow(365), Cost: f64Ptr(100), CostCenter: strPtr("CC-ENG"),
	})
	require.NoError(t, err)

	repo := NewReportRepository(db)
	rows, err := repo.SpendByCostCenter(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Biggest total first: CC-ENG carries license and support spend.
	assert.Equal(t, "CC-ENG", rows[0].String("CostCenter"))
	assert.InDelta(t, 400.0, rows[0].Float64("TotalCost"), 0.001)
	assert.InDelta(t, 100.0, rows[0].Float64("SupportCost"), 0.001)
	assert.Equal(t, "CC-FIN", rows[1].String("CostCenter"))
}
