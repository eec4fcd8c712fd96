package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/sltrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// sqlserverExecutor runs against a remote SQL Server through a bounded
// connection pool. It performs no DDL: the remote deployment owns its own
// schema migration process.
type sqlserverExecutor struct {
	sqlserverQuerier
	db  *sql.DB
	log *zap.Logger
}

type sqlserverQuerier struct {
	db dbtx
}

// OpenSQLServer opens a pooled connection to the configured server.
// Connection failures after this point surface as transient errors and the
// pool re-establishes connections on the next call.
func OpenSQLServer(cfg *config.DatabaseConfig, log *zap.Logger) (Executor, error) {
	db, err := sql.Open("sqlserver", SQLServerDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}

	log.Info("SQL Server connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
	)

	return &sqlserverExecutor{
		sqlserverQuerier: sqlserverQuerier{db: db},
		db:               db,
		log:              log,
	}, nil
}

// SQLServerDSN assembles an ADO-style connection string. Windows
// integrated auth replaces explicit credentials when configured.
func SQLServerDSN(cfg *config.DatabaseConfig) string {
	parts := []string{
		fmt.Sprintf("server=%s", cfg.Host),
		fmt.Sprintf("port=%d", cfg.Port),
		fmt.Sprintf("database=%s", cfg.DBName),
		"app name=sltrack-backend",
	}

	if cfg.WindowsAuth {
		parts = append(parts, "trusted_connection=yes")
	} else {
		parts = append(parts,
			fmt.Sprintf("user id=%s", cfg.User),
			fmt.Sprintf("password=%s", cfg.Password),
		)
	}

	if cfg.Encrypt {
		parts = append(parts, "encrypt=true")
	} else {
		parts = append(parts, "encrypt=disable")
	}
	if cfg.TrustServerCert {
		parts = append(parts, "TrustServerCertificate=true")
	}

	return strings.Join(parts, ";")
}

func (q sqlserverQuerier) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rewritten, _ := rewritePlaceholders(query)
	rows, err := q.db.QueryContext(ctx, rewritten, coerceArgs(args)...)
	if err != nil {
		return nil, classifySQLServerError(err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, classifySQLServerError(err)
	}
	return out, nil
}

func (q sqlserverQuerier) Get(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (q sqlserverQuerier) Run(ctx context.Context, query string, args ...any) (Result, error) {
	rewritten, _ := rewritePlaceholders(query)
	params := coerceArgs(args)

	if isInsert(query) {
		// SCOPE_IDENTITY() is batched with the INSERT on the same
		// connection, so concurrent writers on other sessions can never
		// leak their identity values into this result.
		batch := rewritten + "; SELECT CAST(SCOPE_IDENTITY() AS BIGINT)"
		var lastID sql.NullInt64
		if err := q.db.QueryRowContext(ctx, batch, params...).Scan(&lastID); err != nil {
			return Result{}, classifySQLServerError(err)
		}
		// A parameterized single-row INSERT affects exactly one row once
		// it has succeeded.
		return Result{LastInsertID: lastID.Int64, RowsAffected: 1}, nil
	}

	res, err := q.db.ExecContext(ctx, rewritten, params...)
	if err != nil {
		return Result{}, classifySQLServerError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, classifySQLServerError(err)
	}
	return Result{RowsAffected: affected}, nil
}

// Exec sends the script as one batch; SQL Server accepts multi-statement
// batches natively.
func (e *sqlserverExecutor) Exec(ctx context.Context, script string) error {
	if _, err := e.db.ExecContext(ctx, script); err != nil {
		return classifySQLServerError(err)
	}
	return nil
}

func (e *sqlserverExecutor) Transaction(ctx context.Context, fn func(q Querier) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return classifySQLServerError(err)
	}

	if err := fn(sqlserverQuerier{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			e.log.Error("transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return classifySQLServerError(err)
	}
	return nil
}

func (e *sqlserverExecutor) Dialect() Dialect {
	return sqlserverDialect{}
}

func (e *sqlserverExecutor) Close() error {
	return e.db.Close()
}
