package dbexport

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tannerpace/sqltojson/errs"
)

// ExportTable reads every row and the column descriptors of table. The rows
// query runs first and is fully drained before the columns query starts, so
// a single connection is enough.
func ExportTable(ctx context.Context, q Querier, table string, log zerolog.Logger) (*TableSnapshot, error) {
	log.Info().Str("table", table).Msg("Exporting table")
	start := time.Now()

	rows, err := fetchRows(ctx, q, table)
	if err != nil {
		return nil, err
	}
	columns, err := ListColumns(ctx, q, table)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("table", table).
		Int("rows", len(rows)).
		Int("columns", len(columns)).
		Dur("elapsed", time.Since(start)).
		Msg("Table exported")
	return &TableSnapshot{Name: table, Rows: rows, Columns: columns}, nil
}

func fetchRows(ctx context.Context, q Querier, table string) ([]Record, error) {
	rows, err := q.QueryContext(ctx, "SELECT * FROM "+QuoteIdent(table))
	if err != nil {
		return nil, mapError(err, errs.KindQuery, "error querying table rows").WithTable(table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, mapError(err, errs.KindQuery, "error getting columns").WithTable(table)
	}
	var dbTypes []string
	if types, err := rows.ColumnTypes(); err == nil {
		dbTypes = make([]string, len(types))
		for i, ct := range types {
			dbTypes[i] = ct.DatabaseTypeName()
		}
	}

	records := []Record{}
	for rows.Next() {
		rec, err := ScanRecord(rows, cols, dbTypes)
		if err != nil {
			return nil, mapError(err, errs.KindQuery, "error reading row").WithTable(table)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, errs.KindQuery, "row error").WithTable(table)
	}
	return records, nil
}
