package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/sltrack/backend/internal/domain/shared"
	sqlite "modernc.org/sqlite"
)

// SQLite primary result codes. The extended code carries the primary code
// in its low byte.
const (
	sqliteBusy       = 5
	sqliteLocked     = 6
	sqliteConstraint = 19
)

// SQL Server engine error numbers.
const (
	mssqlNullViolation   = 515
	mssqlConstraint      = 547
	mssqlDuplicateKey    = 2601
	mssqlDuplicateUnique = 2627
)

// classifySQLiteError maps driver failures onto the backend error taxonomy.
// The driver error rides on the cause only; its text carries schema detail
// that must not reach response bodies. Context cancellation passes through
// untouched so callers can still match on context.Canceled.
func classifySQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqliteConstraint:
			return shared.ErrConflict.WithMessage("constraint violated").WithCause(err)
		case sqliteBusy, sqliteLocked:
			return shared.ErrTransientBackend.WithMessage("database busy").WithCause(err)
		}
	}

	return shared.ErrFatalBackend.WithCause(err)
}

func classifySQLServerError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var me mssql.Error
	if errors.As(err, &me) {
		switch me.Number {
		case mssqlDuplicateUnique, mssqlDuplicateKey, mssqlConstraint:
			return shared.ErrConflict.WithMessage("constraint violated").WithCause(err)
		case mssqlNullViolation:
			return shared.ErrValidation.WithMessage("required column missing").WithCause(err)
		}
	}

	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, driver.ErrBadConn) {
		return shared.ErrTransientBackend.WithMessage("database unreachable").WithCause(err)
	}

	return shared.ErrFatalBackend.WithCause(err)
}
