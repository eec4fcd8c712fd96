package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	sqlite "modernc.org/sqlite"
)

func openTestSQLite(t *testing.T) Executor {
	t.Helper()
	exec, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = exec.Close() })
	return exec
}

func TestOpenSQLiteBootstrapsSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "boot.db")

	exec, err := OpenSQLite(path, zap.NewNop())
	require.NoError(t, err)

	rows, err := exec.Query(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.String("name"))
	}
	assert.Contains(t, names, "Manufacturers")
	assert.Contains(t, names, "SoftwareTitles")
	assert.Contains(t, names, "Licenses")
	assert.Contains(t, names, "SupportContracts")
	assert.Contains(t, names, "Attachments")
	assert.Contains(t, names, "Users")
	assert.Contains(t, names, "AppSettings")
	assert.Contains(t, names, "CostCenters")
	assert.Contains(t, names, "Currencies")

	require.NoError(t, exec.Close())

	// Reopening the same file must re-apply the schema without error.
	exec, err = OpenSQLite(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, exec.Close())
}

func TestSQLiteRunReturnsInsertIdentity(t *testing.T) {
	ctx := context.Background()
	exec := openTestSQLite(t)

	res, err := exec.Run(ctx, `INSERT INTO Manufacturers (Name) VALUES (?)`, "Adobe")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LastInsertID)
	assert.Equal(t, int64(1), res.RowsAffected)

	res, err = exec.Run(ctx, `INSERT INTO Manufacturers (Name) VALUES (?)`, "Autodesk")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.LastInsertID)

	// Updates report affected rows and no identity.
	res, err = exec.Run(ctx, `UPDATE Manufacturers SET Website = ?`, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.LastInsertID)
	assert.Equal(t, int64(2), res.RowsAffected)
}

func TestSQLiteQueryAndGet(t *testing.T) {
	ctx := context.Background()
	exec := openTestSQLite(t)

	rows, err := exec.Query(ctx, `SELECT * FROM Manufacturers`)
	require.NoError(t, err)
	assert.Empty(t, rows)

	row, err := exec.Get(ctx, `SELECT * FROM Manufacturers WHERE ManufacturerID = ?`, 99)
	require.NoError(t, err)
	assert.Nil(t, row)

	_, err = exec.Run(ctx, `INSERT INTO Manufacturers (Name, Website) VALUES (?, ?)`, "Microsoft", "https://microsoft.com")
	require.NoError(t, err)

	row, err = exec.Get(ctx, `SELECT ManufacturerID, Name, Website, ContactEmail FROM Manufacturers WHERE Name = ?`, "Microsoft")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, int64(1), row.Int64("ManufacturerID"))
	assert.Equal(t, "Microsoft", row.String("Name"))
	assert.Equal(t, "https://microsoft.com", row.String("Website"))
	assert.Equal(t, "", row.String("ContactEmail"))
}

func TestSQLiteConstraintBecomesConflict(t *testing.T) {
	ctx := context.Background()
	exec := openTestSQLite(t)

	_, err := exec.Run(ctx, `INSERT INTO Manufacturers (Name) VALUES (?)`, "Oracle")
	require.NoError(t, err)

	_, err = exec.Run(ctx, `INSERT INTO Manufacturers (Name) VALUES (?)`, "Oracle")
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))

	// The classified message must stay generic. Table, column and driver
	// error-code detail belongs on the wrapped cause, not in text that
	// handlers put into response bodies.
	assert.Equal(t, "constraint violated", err.Error())

	var se *sqlite.Error
	assert.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), "UNIQUE")
}

func TestSQLiteCheckConstraintBecomesConflict(t *testing.T) {
	ctx := context.Background()
	exec := openTestSQLite(t)

	_, err := exec.Run(ctx, `INSERT INTO SoftwareTitles (TitleName) VALUES (?)`, "Photoshop")
	require.NoError(t, err)

	_, err = exec.Run(ctx,
		`INSERT INTO Licenses (TitleID, PONumber, LicenseType) VALUES (?, ?, ?)`,
		1, "PO-1001", "Trial")
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func TestSQLiteTransaction(t *testing.T) {
	ctx := context.Background()
	exec := openTestSQLite(t)

	t.Run("commits when fn succeeds", func(t *testing.T) {
		err := exec.Transaction(ctx, func(q Querier) error {
			if _, err := q.Run(ctx, `INSERT INTO CostCenters (Name, Department) VALUES (?, ?)`, "CC-100", "Engineering"); err != nil {
				return err
			}
			_, err := q.Run(ctx, `INSERT INTO CostCenters (Name, Department) VALUES (?, ?)`, "CC-200", "Finance")
			return err
		})
		require.NoError(t, err)

		row, err := exec.Get(ctx, `SELECT COUNT(*) AS n FROM CostCenters`)
		require.NoError(t, err)
		assert.Equal(t, int64(2), row.Int64("n"))
	})

	t.Run("rolls back every statement when fn fails", func(t *testing.T) {
		sentinel := fmt.Errorf("abort")
		err := exec.Transaction(ctx, func(q Querier) error {
			if _, err := q.Run(ctx, `INSERT INTO CostCenters (Name) VALUES (?)`, "CC-300"); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		row, err := exec.Get(ctx, `SELECT COUNT(*) AS n FROM CostCenters WHERE Name = ?`, "CC-300")
		require.NoError(t, err)
		assert.Equal(t, int64(0), row.Int64("n"))
	})
}

func TestSQLiteExecScript(t *testing.T) {
	ctx := context.Background()
	exec := openTestSQLite(t)

	err := exec.Exec(ctx, `
		INSERT INTO Currencies (CurrencyCode, CurrencyName) VALUES ('CHF', 'Swiss Franc');
		INSERT INTO Currencies (CurrencyCode, CurrencyName) VALUES ('SEK', 'Swedish Krona');
	`)
	require.NoError(t, err)

	rows, err := exec.Query(ctx, `SELECT CurrencyCode FROM Currencies WHERE CurrencyCode IN (?, ?) ORDER BY CurrencyCode`, "CHF", "SEK")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CHF", rows[0].String("CurrencyCode"))
}

func TestSQLiteDialect(t *testing.T) {
	exec := openTestSQLite(t)
	d := exec.Dialect()
	assert.Equal(t, "sqlite", d.Name())

	ctx := context.Background()
	row, err := exec.Get(ctx, `SELECT `+d.DateAddDays()+` AS future, `+d.CurrentDate()+` AS today`, 30)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.NotEmpty(t, row.String("future"))
	assert.Greater(t, row.String("future"), row.String("today"))
}
