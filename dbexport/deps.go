package dbexport

import (
	"context"
	"database/sql"
)

// Package-level hooks replaced in tests.
var sqlOpen = sql.Open
var dbPing = func(ctx context.Context, db *sql.DB) error { return db.PingContext(ctx) }
var openSQLite = func(driver, dsn string) (*sql.DB, error) {
	return sql.Open(driver, dsn)
}
var openDuckDB = func(driver, dsn string) (*sql.DB, error) {
	return sql.Open(driver, dsn)
}
