package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// sqliteExecutor runs against an embedded single-file database. The pool is
// capped at one connection: every statement and every transaction bracket
// serializes through it, so transactions can never interleave and session
// pragmas apply to all work.
type sqliteExecutor struct {
	sqliteQuerier
	db  *sql.DB
	log *zap.Logger
}

type sqliteQuerier struct {
	db dbtx
}

// OpenSQLite opens (creating if needed) the database file, applies the
// session pragmas and bootstraps the schema.
func OpenSQLite(path string, log *zap.Logger) (Executor, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	e := &sqliteExecutor{
		sqliteQuerier: sqliteQuerier{db: db},
		db:            db,
		log:           log,
	}

	if err := e.bootstrap(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("SQLite database ready", zap.String("path", path))
	return e, nil
}

// bootstrap applies pragmas and the idempotent schema, one statement at a
// time so a failure names the statement that broke.
func (e *sqliteExecutor) bootstrap(ctx context.Context) error {
	apply := func(stmts []ddlStatement) error {
		for _, stmt := range stmts {
			if _, err := e.db.ExecContext(ctx, stmt.sql); err != nil {
				return fmt.Errorf("bootstrap statement %q: %w", stmt.name, err)
			}
		}
		return nil
	}
	if err := apply(sqlitePragmas); err != nil {
		return err
	}
	if err := apply(sqliteSchema); err != nil {
		return err
	}
	return apply(sqliteSeed)
}

func (q sqliteQuerier) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifySQLiteError(err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, classifySQLiteError(err)
	}
	return out, nil
}

func (q sqliteQuerier) Get(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (q sqliteQuerier) Run(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, classifySQLiteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, classifySQLiteError(err)
	}

	var lastID int64
	if isInsert(query) {
		lastID, err = res.LastInsertId()
		if err != nil {
			return Result{}, classifySQLiteError(err)
		}
	}

	return Result{LastInsertID: lastID, RowsAffected: affected}, nil
}

// Exec runs a parameterless script; the driver accepts multiple
// semicolon-separated statements in one call.
func (e *sqliteExecutor) Exec(ctx context.Context, script string) error {
	if _, err := e.db.ExecContext(ctx, script); err != nil {
		return classifySQLiteError(err)
	}
	return nil
}

func (e *sqliteExecutor) Transaction(ctx context.Context, fn func(q Querier) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return classifySQLiteError(err)
	}

	if err := fn(sqliteQuerier{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			e.log.Error("transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return classifySQLiteError(err)
	}
	return nil
}

func (e *sqliteExecutor) Dialect() Dialect {
	return sqliteDialect{}
}

func (e *sqliteExecutor) Close() error {
	return e.db.Close()
}
