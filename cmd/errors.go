package cmd

import (
	"fmt"
	"strings"

	"github.com/tannerpace/sqltojson/dbexport"
	"github.com/tannerpace/sqltojson/errs"
)

// isInvalidTableError reports whether err, or anything it wraps, says a
// table is missing.
func isInvalidTableError(err error) bool {
	if err == nil {
		return false
	}
	if dbexport.IsNoSuchTable(err) {
		return true
	}
	var patterns = []string{
		"doesn't exist",
		"does not exist",
		"unknown table",
		"no such table",
		"invalid table name",
	}
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		errStr := strings.ToLower(err.Error())
		for _, pat := range patterns {
			if strings.Contains(errStr, pat) {
				return true
			}
		}
		u, ok := err.(unwrapper)
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}

// withTableHint appends a hint to missing-table errors.
func withTableHint(err error) error {
	if !isInvalidTableError(err) {
		return err
	}
	table := errs.TableOf(err)
	if table == "" {
		table = "the table"
	}
	return fmt.Errorf("%w.\n\ncheck that %s exists in the database and is spelled correctly; MySQL table names are case sensitive on most platforms", err, table)
}
