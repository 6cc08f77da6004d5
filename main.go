// sqltojson exports every table of a MySQL database to JSON and writes a
// TypeScript interface per table.
//
// Usage:
//
//	sqltojson [--mode single-file|per-table|both] [--out <dir>] [--interactive]
//	  Export all tables. Connection settings come from flags, DB_* environment
//	  variables, a .env file or --config <file.yaml>.
//	sqltojson tables
//	  List all tables in the database
//	sqltojson fields <table_name>
//	  List the columns of a table with their TypeScript types
package main

import (
	"github.com/tannerpace/sqltojson/cmd"

	_ "github.com/marcboeker/go-duckdb"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cmd.Execute()
}
