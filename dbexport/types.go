package dbexport

import (
	"context"
	"database/sql"
)

// Querier is the part of *sql.DB the exporter needs. *sql.Conn and *sql.Tx
// satisfy it too.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// ColumnDescriptor is one column as reported by the catalog.
type ColumnDescriptor struct {
	Name     string
	RawType  string // native declaration, e.g. "varchar(255)"
	Nullable bool
}

// TableSnapshot holds everything read from one table during a run.
type TableSnapshot struct {
	Name    string
	Rows    []Record
	Columns []ColumnDescriptor
}

// ColumnNames returns the column names in catalog order. When the catalog
// returned no columns the names of the first row are used.
func (s *TableSnapshot) ColumnNames() []string {
	if len(s.Columns) > 0 {
		names := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			names[i] = c.Name
		}
		return names
	}
	if len(s.Rows) > 0 {
		return s.Rows[0].Columns()
	}
	return nil
}
