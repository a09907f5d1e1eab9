package utils

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsPGCheckViolation reports whether error is PostgreSQL check constraint violation (code 23514).
func IsPGCheckViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23514"
	}
	return false
}

// IsSQLiteCheckViolation reports whether error is SQLITE_CONSTRAINT_CHECK.
func IsSQLiteCheckViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_CHECK {
			return true
		}
		// primary code only when extended result codes are off
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "CHECK constraint failed")
	}
	return false
}

// IsCheckViolation reports a rejected CHECK constraint from either storage driver.
func IsCheckViolation(err error) bool {
	return IsPGCheckViolation(err) || IsSQLiteCheckViolation(err)
}
