package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/infrastructure/database"
)

// DashboardRepository aggregates the landing-page numbers: license type
// breakdown, spend by cost center and upcoming expirations across both
// licenses and support contracts. Decommissioned titles are excluded from
// every figure.
type DashboardRepository struct {
	db database.Executor
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db database.Executor) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// DashboardOverview is the full dashboard payload. Field names match what
// the UI consumes.
type DashboardOverview struct {
	LicensingOverview   []database.Row `json:"licensingOverview"`
	CostByDepartment    []database.Row `json:"costByDepartment"`
	Expirations30Days   int64          `json:"expirations30Days"`
	Expirations60Days   int64          `json:"expirations60Days"`
	UpcomingExpirations []database.Row `json:"upcomingExpirations"`
	TotalActiveTitles   int64          `json:"totalActiveTitles"`
	TotalSpend          float64        `json:"totalSpend"`
}

// Overview assembles the dashboard in a handful of read queries. The reads
// are not wrapped in a transaction; the dashboard tolerates being a few
// writes behind.
func (r *DashboardRepository) Overview(ctx context.Context) (*DashboardOverview, error) {
	out := &DashboardOverview{}

	var err error
	out.LicensingOverview, err = r.db.Query(ctx, `
		SELECT LicenseType, COUNT(*) AS count, SUM(Quantity) AS totalQuantity
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		WHERE t.IsDecommissioned = 0
		GROUP BY LicenseType`)
	if err != nil {
		return nil, err
	}

	out.CostByDepartment, err = r.db.Query(ctx, `
		SELECT CostCenter, SUM(Cost) AS totalCost
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		WHERE t.IsDecommissioned = 0 AND l.Cost IS NOT NULL
		GROUP BY CostCenter
		ORDER BY totalCost DESC`)
	if err != nil {
		return nil, err
	}

	out.Expirations30Days, err = r.expiringCount(ctx, 30)
	if err != nil {
		return nil, err
	}
	out.Expirations60Days, err = r.expiringCount(ctx, 60)
	if err != nil {
		return nil, err
	}

	d := r.db.Dialect()
	out.UpcomingExpirations, err = r.db.Query(ctx, `
		SELECT
			t.TitleName AS softwareTitle,
			'License' AS itemType,
			l.LicenseType AS type,
			l.ExpirationDate AS expirationDate,
			l.PONumber AS poNumber,
			l.CostCenter AS costCenter,
			`+d.DaysUntil("l.ExpirationDate")+` AS daysRemaining
		FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		WHERE t.IsDecommissioned = 0
			AND l.ExpirationDate IS NOT NULL
			AND l.ExpirationDate BETWEEN `+d.CurrentDate()+` AND `+d.DateAddDays()+`
		UNION ALL
		SELECT
			t.TitleName AS softwareTitle,
			'Support Contract' AS itemType,
			'Support Contract' AS type,
			sc.EndDate AS expirationDate,
			sc.PONumber AS poNumber,
			sc.CostCenter AS costCenter,
			`+d.DaysUntil("sc.EndDate")+` AS daysRemaining
		FROM SupportContracts sc
		JOIN Licenses l ON sc.LicenseID = l.LicenseID
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		WHERE t.IsDecommissioned = 0
			AND sc.EndDate BETWEEN `+d.CurrentDate()+` AND `+d.DateAddDays()+`
		ORDER BY expirationDate ASC`, 60, 60)
	if err != nil {
		return nil, err
	}

	row, err := r.db.Get(ctx, `SELECT COUNT(*) AS count FROM SoftwareTitles WHERE IsDecommissioned = 0`)
	if err != nil {
		return nil, err
	}
	out.TotalActiveTitles = row.Int64("count")

	row, err = r.db.Get(ctx, `
		SELECT SUM(l.Cost) AS total FROM Licenses l
		JOIN SoftwareTitles t ON l.TitleID = t.TitleID
		WHERE t.IsDecommissioned = 0`)
	if err != nil {
		return nil, err
	}
	out.TotalSpend = row.Float64("total")

	return out, nil
}

// expiringCount counts licenses and support contracts expiring within the
// next `days` days, inclusive of today.
func (r *DashboardRepository) expiringCount(ctx context.Context, days int) (int64, error) {
	d := r.db.Dialect()
	row, err := r.db.Get(ctx, `
		SELECT COUNT(*) AS count FROM (
			SELECT LicenseID AS id FROM Licenses l
			JOIN SoftwareTitles t ON l.TitleID = t.TitleID
			WHERE t.IsDecommissioned = 0
				AND l.ExpirationDate IS NOT NULL
				AND l.ExpirationDate BETWEEN `+d.CurrentDate()+` AND `+d.DateAddDays()+`
			UNION ALL
			SELECT sc.SupportID AS id FROM SupportContracts sc
			JOIN Licenses l ON sc.LicenseID = l.LicenseID
			JOIN SoftwareTitles t ON l.TitleID = t.TitleID
			WHERE t.IsDecommissioned = 0
				AND sc.EndDate BETWEEN `+d.CurrentDate()+` AND `+d.DateAddDays()+`
		) expiring`, days, days)
	if err != nil {
		return 0, err
	}
	return row.Int64("count"), nil
}
