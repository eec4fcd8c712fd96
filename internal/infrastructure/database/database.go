// Package database provides the dialect-neutral query executor used by all
// persistence code. Two interchangeable backends satisfy the same contract:
// an embedded SQLite file and a remote SQL Server. Queries are written once,
// with ?-positional placeholders, and each backend takes care of its own
// parameter syntax, value binding and insert-identity retrieval.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sltrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Row is one result row keyed by column alias. Values are normalized so
// callers observe the same Go types under both backends: integral numerics
// arrive as int64, text as string, NULL as nil.
type Row map[string]any

// Result reports the outcome of a mutating statement.
// LastInsertID is only meaningful for INSERT statements and is 0 otherwise.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Querier is the read/write contract shared by an Executor and a
// transaction-scoped handle. Argument N binds to the N-th ? occurrence in
// the query text, counted left to right.
type Querier interface {
	// Query runs a read query and returns every matching row.
	// Zero matches yield an empty slice, never an error.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)

	// Get returns the first matching row, or nil when there is none.
	Get(ctx context.Context, query string, args ...any) (Row, error)

	// Run executes a mutating statement. For INSERTs the returned
	// LastInsertID is the identity generated by that insert, retrieved in
	// the same connection/transaction scope.
	Run(ctx context.Context, query string, args ...any) (Result, error)
}

// Executor is the full backend contract. Construct one at process start,
// pass it explicitly to whoever needs it, Close it once at shutdown.
type Executor interface {
	Querier

	// Exec runs a parameterless script, possibly containing multiple
	// statements, with no result. Used for DDL and bulk delete scripts.
	Exec(ctx context.Context, script string) error

	// Transaction begins a transaction, invokes fn with a handle bound to
	// it, commits when fn returns nil and rolls back otherwise. Nested
	// transactions are not supported; the handle deliberately does not
	// expose Transaction.
	Transaction(ctx context.Context, fn func(q Querier) error) error

	// Dialect exposes the few SQL fragments the two engines spell
	// differently, so callers never branch on backend identity.
	Dialect() Dialect

	// Close releases the underlying pool. Idempotent.
	Close() error
}

// New opens the backend selected by configuration.
func New(cfg *config.DatabaseConfig, log *zap.Logger) (Executor, error) {
	switch cfg.Type {
	case "sqlite":
		return OpenSQLite(cfg.Path, log)
	case "sqlserver":
		return OpenSQLServer(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

var insertPattern = regexp.MustCompile(`(?i)^\s*INSERT\b`)

// isInsert reports whether the statement is an INSERT, which is the only
// case where the executor must surface a generated identity.
func isInsert(query string) bool {
	return insertPattern.MatchString(query)
}

// dbtx is the subset of *sql.DB / *sql.Tx both querier variants run on.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanRows drains rows into normalized Row maps.
func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, 8)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// normalizeValue flattens driver-specific value types so both backends
// produce identical row shapes.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	default:
		return v
	}
}

// Int64 reads a column as int64, tolerating the numeric representations
// different drivers produce. Missing or NULL columns read as 0.
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	default:
		return 0
	}
}

// String reads a column as string. Missing or NULL columns read as "".
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Float64 reads a column as float64. Missing or NULL columns read as 0.
func (r Row) Float64(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		return 0
	}
}

// Bool reads a column as bool, treating any non-zero numeric as true.
func (r Row) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	default:
		return false
	}
}
