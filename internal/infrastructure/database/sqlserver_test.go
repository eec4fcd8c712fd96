package database

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sltrack/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockExecutor(t *testing.T) (*sqlserverExecutor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &sqlserverExecutor{
		sqlserverQuerier: sqlserverQuerier{db: db},
		db:               db,
		log:              zap.NewNop(),
	}, mock
}

func TestSQLServerQueryRewritesPlaceholders(t *testing.T) {
	ctx := context.Background()
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT Name FROM Manufacturers WHERE ManufacturerID = @p1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"Name"}).AddRow("Adobe"))

	rows, err := exec.Query(ctx, `SELECT Name FROM Manufacturers WHERE ManufacturerID = ?`, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Adobe", rows[0].String("Name"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServerRunBatchesScopeIdentity(t *testing.T) {
	ctx := context.Background()
	exec, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO Manufacturers (Name) VALUES (@p1); SELECT CAST(SCOPE_IDENTITY() AS BIGINT)`)).
		WithArgs("Adobe").
		WillReturnRows(sqlmock.NewRows([]string{""}).AddRow(int64(42)))

	res, err := exec.Run(ctx, `INSERT INTO Manufacturers (Name) VALUES (?)`, "Adobe")
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.LastInsertID)
	assert.Equal(t, int64(1), res.RowsAffected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServerRunUpdateReportsAffected(t *testing.T) {
	ctx := context.Background()
	exec, mock := newMockExecutor(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE Users SET IsActive = @p1 WHERE Username = @p2`)).
		WithArgs(int64(0), "jdoe").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := exec.Run(ctx, `UPDATE Users SET IsActive = ? WHERE Username = ?`, false, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.LastInsertID)
	assert.Equal(t, int64(1), res.RowsAffected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServerTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		exec, mock := newMockExecutor(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM Attachments WHERE LicenseID = @p1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := exec.Transaction(ctx, func(q Querier) error {
			_, err := q.Run(ctx, `DELETE FROM Attachments WHERE LicenseID = ?`, 3)
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on failure", func(t *testing.T) {
		exec, mock := newMockExecutor(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		sentinel := fmt.Errorf("abort")
		err := exec.Transaction(ctx, func(q Querier) error { return sentinel })
		require.ErrorIs(t, err, sentinel)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuildSQLServerDSN(t *testing.T) {
	t.Run("sql authentication", func(t *testing.T) {
		dsn := SQLServerDSN(&config.DatabaseConfig{
			Host: "db.corp.local", Port: 1433, DBName: "SLTrack",
			User: "svc_sltrack", Password: "secret", Encrypt: true, TrustServerCert: true,
		})
		assert.Contains(t, dsn, "server=db.corp.local")
		assert.Contains(t, dsn, "user id=svc_sltrack")
		assert.Contains(t, dsn, "encrypt=true")
		assert.Contains(t, dsn, "TrustServerCertificate=true")
		assert.NotContains(t, dsn, "trusted_connection")
	})

	t.Run("windows authentication omits credentials", func(t *testing.T) {
		dsn := SQLServerDSN(&config.DatabaseConfig{
			Host: "db.corp.local", Port: 1433, DBName: "SLTrack", WindowsAuth: true,
		})
		assert.Contains(t, dsn, "trusted_connection=yes")
		assert.NotContains(t, dsn, "user id=")
		assert.Contains(t, dsn, "encrypt=disable")
	})
}
