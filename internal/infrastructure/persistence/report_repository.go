package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/infrastructure/database"
)

// ReportRepository serves the exportable reports: expirations within a
// window, the full inventory roll-up and spend grouped by cost center.
type ReportRepository struct {
	db database.Executor
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db database.Executor) *ReportRepository {
	return &ReportRepository{db: db}
}

// Expirations lists licenses and support contracts on active titles that
// expire within the next `days` days, soonest first.
func (r *ReportRepository) Expirations(ctx context.Context, days int) ([]database.Row, error) {
	d := r.db.Dialect()
	return r.db.Query(ctx, `
		SELECT
			t.TitleName AS softwareTitle,
			m.Name AS vendor,
			l.LicenseType AS licenseType,
			l.ExpirationDate AS expirationDate,
			`+d.DaysUntil("l.ExpirationDate")+` AS daysRemaining,
			l.PONumber AS poNumber,
			l.CostCenter AS costCenter,
			l.Quantity AS quantity,
			l.Cost AS cost
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		WHERE t.IsDecommissioned = 0
			AND l.ExpirationDate IS NOT NULL
			AND l.ExpirationDate BETWEEN `+d.CurrentDate()+` AND `+d.DateAddDays()+`
		UNION ALL
		SELECT
			t.TitleName AS softwareTitle,
			m.Name AS vendor,
			'Support Contract' AS licenseType,
			sc.EndDate AS expirationDate,
			`+d.DaysUntil("sc.EndDate")+` AS daysRemaining,
			sc.PONumber AS poNumber,
			sc.CostCenter AS costCenter,
			l.Quantity AS quantity,
			sc.Cost AS cost
		FROM SupportContracts sc
		JOIN Licenses l ON sc.LicenseID = l.LicenseID
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		WHERE t.IsDecommissioned = 0
			AND sc.EndDate BETWEEN `+d.CurrentDate()+` AND `+d.DateAddDays()+`
		ORDER BY expirationDate ASC`, days, days)
}

// Inventory returns the per-title roll-up across all titles, active and
// decommissioned.
func (r *ReportRepository) Inventory(ctx context.Context) ([]database.Row, error) {
	d := r.db.Dialect()
	return r.db.Query(ctx, `
		SELECT
			t.TitleName,
			m.Name AS Manufacturer,
			r.Name AS Reseller,
			t.Category,
			CASE WHEN t.IsDecommissioned = 1 THEN 'Decommissioned' ELSE 'Active' END AS Status,
			COUNT(l.LicenseID) AS LicenseCount,
			SUM(l.Quantity) AS TotalQuantity,
			SUM(l.Cost) AS TotalCost,
			`+d.GroupConcat("DISTINCT l.LicenseType")+` AS LicenseTypes,
			`+d.GroupConcat("DISTINCT l.CostCenter")+` AS CostCenters
		FROM SoftwareTitles t
		LEFT JOIN Manufacturers m ON t.ManufacturerID = m.ManufacturerID
		LEFT JOIN Resellers r ON t.ResellerID = r.ResellerID
		LEFT JOIN Licenses l ON l.TitleID = t.TitleID
		GROUP BY t.TitleID, t.TitleName, m.Name, r.Name, t.Category, t.IsDecommissioned
		ORDER BY t.IsDecommissioned ASC, t.TitleName ASC`)
}

// SpendByCostCenter totals license and support spend per cost center for
// active titles, biggest spender first.
func (r *ReportRepository) SpendByCostCenter(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `
		SELECT
			l.CostCenter,
			COUNT(DISTINCT t.TitleID) AS TitleCount,
			SUM(l.Quantity) AS TotalLicenses,
			SUM(l.Cost) AS LicenseCost,
			COALESCE(SUM(sc.Cost), 0) AS SupportCost,
			SUM(l.Cost) + COALESCE(SUM(sc.Cost), 0) AS TotalCost
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		LEFT JOIN SupportContracts sc ON sc.LicenseID = l.LicenseID
		WHERE t.IsDecommissioned = 0
		GROUP BY l.CostCenter
		ORDER BY TotalCost DESC`)
}
