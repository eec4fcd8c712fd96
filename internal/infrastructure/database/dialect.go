package database

import "strings"

// Dialect is the small set of SQL fragments SQLite and SQL Server spell
// differently. Repositories build their queries from these helpers instead
// of branching on backend identity.
type Dialect interface {
	// Name identifies the dialect, for logging only.
	Name() string

	// CurrentDate is an expression evaluating to today's date.
	CurrentDate() string

	// DateAddDays is an expression evaluating to today's date plus a day
	// count. It consumes exactly one ? placeholder (the day count), so it
	// keeps the caller's positional argument order intact.
	DateAddDays() string

	// DaysUntil is an expression counting whole days from today until the
	// date in the given column. Negative for past dates.
	DaysUntil(column string) string

	// GroupConcat aggregates the expression's values into one
	// comma-separated string. SQL Server cannot express DISTINCT inside
	// STRING_AGG; a leading "DISTINCT " is honored on SQLite and dropped
	// there, so duplicates may appear in the remote aggregate.
	GroupConcat(expr string) string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string        { return "sqlite" }
func (sqliteDialect) CurrentDate() string { return "date('now')" }
func (sqliteDialect) DateAddDays() string { return "date('now', '+' || ? || ' days')" }

func (sqliteDialect) DaysUntil(column string) string {
	return "CAST(julianday(" + column + ") - julianday('now') AS INTEGER)"
}

func (sqliteDialect) GroupConcat(expr string) string {
	return "GROUP_CONCAT(" + expr + ")"
}

type sqlserverDialect struct{}

func (sqlserverDialect) Name() string        { return "sqlserver" }
func (sqlserverDialect) CurrentDate() string { return "CAST(GETDATE() AS DATE)" }
func (sqlserverDialect) DateAddDays() string { return "DATEADD(day, ?, CAST(GETDATE() AS DATE))" }

func (sqlserverDialect) DaysUntil(column string) string {
	return "DATEDIFF(day, CAST(GETDATE() AS DATE), " + column + ")"
}

func (sqlserverDialect) GroupConcat(expr string) string {
	expr = strings.TrimPrefix(expr, "DISTINCT ")
	return "STRING_AGG(CONVERT(NVARCHAR(MAX), " + expr + "), ',')"
}
