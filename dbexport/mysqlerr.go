package dbexport

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"

	"github.com/tannerpace/sqltojson/errs"
)

// MySQL server error numbers
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errDBAccessDenied  = 1044
	errAccessDenied    = 1045
	errUnknownDatabase = 1049
	errBadField        = 1054
	errParse           = 1064
	errTableAccess     = 1142
	errNoSuchTable     = 1146
	errConnRefused     = 2003
	errUnknownHost     = 2005
	errServerGone      = 2006
	errLostConnection  = 2013
)

// IsNoSuchTable reports whether err is MySQL's "table doesn't exist".
func IsNoSuchTable(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errNoSuchTable
}

// mapError converts a driver error into an *errs.Error. Errors that clearly
// belong to the connection are classified as such regardless of def, so a
// dropped connection mid-export is not reported as a bad query.
func mapError(err error, def errs.Kind, msg string) *errs.Error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDBAccessDenied, errAccessDenied, errUnknownDatabase,
			errConnRefused, errUnknownHost, errServerGone, errLostConnection:
			return errs.Wrap(errs.KindConnection, msg, err)
		case errBadField, errParse, errTableAccess, errNoSuchTable:
			return errs.Wrap(errs.KindQuery, msg, err)
		}
	}
	var netErr net.Error
	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return errs.Wrap(errs.KindConnection, msg, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(def, msg+" (interrupted)", err)
	}
	return errs.Wrap(def, msg, err)
}
