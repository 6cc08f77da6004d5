// Package dbexport exports every table of a MySQL database to JSON and derives
// TypeScript (and optionally Go) type declarations from the column metadata.
//
// The pieces, leaves first:
//
//	MapType            raw column type -> TargetType
//	Synthesize         table columns -> TypeScript interface
//	ExportTable        rows + columns of one table -> TableSnapshot
//	Orchestrator.Run   enumerate, export each table, persist the artifacts
package dbexport

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tannerpace/sqltojson/errs"
)

// QuoteIdent quotes a MySQL identifier with backticks.
func QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// ListTables returns the tables visible to the connected user in the order
// the catalog returns them.
func ListTables(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, mapError(err, errs.KindQuery, "error querying tables")
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err, errs.KindQuery, "error scanning table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, errs.KindQuery, "row error")
	}
	return tables, nil
}

// ListColumns returns the column descriptors of table in definition order.
// Only the Field, Type and Null columns of SHOW COLUMNS are read.
func ListColumns(ctx context.Context, q Querier, table string) ([]ColumnDescriptor, error) {
	rows, err := q.QueryContext(ctx, "SHOW COLUMNS FROM "+QuoteIdent(table))
	if err != nil {
		return nil, mapError(err, errs.KindQuery, "error querying fields").WithTable(table)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, mapError(err, errs.KindQuery, "error getting columns").WithTable(table)
	}
	field, typ, null := -1, -1, -1
	for i, n := range names {
		switch strings.ToLower(n) {
		case "field":
			field = i
		case "type":
			typ = i
		case "null":
			null = i
		}
	}
	if field < 0 || typ < 0 {
		return nil, errs.New(errs.KindQuery, "unexpected SHOW COLUMNS result: missing Field or Type").WithTable(table)
	}

	columns := []ColumnDescriptor{}
	for rows.Next() {
		vals := make([]sql.NullString, len(names))
		dest := make([]interface{}, len(names))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, mapError(err, errs.KindQuery, "error scanning field").WithTable(table)
		}
		col := ColumnDescriptor{Name: vals[field].String, RawType: vals[typ].String}
		if null >= 0 {
			col.Nullable = strings.EqualFold(vals[null].String, "YES")
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, errs.KindQuery, "row error").WithTable(table)
	}
	return columns, nil
}
