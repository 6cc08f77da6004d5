package dbexport

import (
	"context"
	"database/sql"
	"net"

	"github.com/go-sql-driver/mysql"

	"github.com/tannerpace/sqltojson/config"
	"github.com/tannerpace/sqltojson/errs"
)

// DSN builds the go-sql-driver/mysql data source name for cfg. parseTime is
// enabled so DATE, DATETIME and TIMESTAMP columns arrive as time.Time.
func DSN(cfg config.Config) string {
	port := cfg.Port
	if port == "" {
		port = config.DefaultPort
	}
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, port)
	c.DBName = cfg.Database
	c.ParseTime = true
	return c.FormatDSN()
}

// Open opens the one connection an export run uses and checks it with a ping.
// The pool is capped at a single connection; the caller must Close it.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpen("mysql", DSN(cfg))
	if err != nil {
		return nil, mapError(err, errs.KindConnection, "error creating connection")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := dbPing(ctx, db); err != nil {
		db.Close()
		return nil, mapError(err, errs.KindConnection, "cannot connect to database")
	}
	return db, nil
}
