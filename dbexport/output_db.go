package dbexport

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tannerpace/sqltojson/config"
	"github.com/tannerpace/sqltojson/confirm"
	"github.com/tannerpace/sqltojson/errs"
)

const mirrorBatchSize = 10000

// mirrorDialect captures what differs between the local mirror databases.
type mirrorDialect struct {
	driver      string
	file        string
	existsQuery string
	quote       func(string) string
	open        func(driver, dsn string) (*sql.DB, error)
}

func mirrorDialects() map[string]mirrorDialect {
	return map[string]mirrorDialect{
		config.MirrorSQLite: {
			driver:      "sqlite3",
			file:        "output.sqlite3",
			existsQuery: "SELECT count(*) FROM sqlite_master WHERE type='table' AND name=? COLLATE NOCASE",
			quote:       func(s string) string { return "[" + strings.ReplaceAll(s, "]", "]]") + "]" },
			open:        openSQLite,
		},
		// DuckDB uses double quotes for identifiers
		config.MirrorDuckDB: {
			driver:      "duckdb",
			file:        "output.duckdb",
			existsQuery: "SELECT count(*) FROM information_schema.tables WHERE lower(table_name)=lower(?)",
			quote:       func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` },
			open:        openDuckDB,
		},
	}
}

// Mirror copies every table of bundle into a local SQLite or DuckDB file in
// dir, all columns as TEXT, and returns the file path. A table that already
// exists is dropped and recreated only if provider agrees; otherwise it is
// left untouched. Table names keep their case, but both engines compare
// identifiers case-insensitively, so names differing only in case are
// rejected before the file is opened.
func Mirror(ctx context.Context, kind, dir string, bundle *ExportBundle, provider confirm.Provider, log zerolog.Logger) (string, error) {
	d, ok := mirrorDialects()[kind]
	if !ok {
		return "", errs.New(errs.KindConfiguration, fmt.Sprintf("unknown mirror %q", kind))
	}
	if err := CheckMirrorNames(bundle); err != nil {
		return "", err
	}
	path := filepath.Join(dir, d.file)
	db, err := d.open(d.driver, path)
	if err != nil {
		return "", errs.Wrap(errs.KindFilesystem, "error opening "+d.file, err)
	}
	defer db.Close()

	start := time.Now()
	for _, s := range bundle.Tables() {
		if err := mirrorTable(ctx, db, d, s, provider, log); err != nil {
			return "", errs.Wrap(errs.KindFilesystem, "error mirroring to "+d.file, err).WithTable(s.Name)
		}
	}
	log.Info().Str("file", path).Int("tables", bundle.Len()).Dur("elapsed", time.Since(start)).Msg("Mirror written")
	return path, nil
}

// CheckMirrorNames fails when two tables of bundle differ only in case and
// would therefore share one mirror table.
func CheckMirrorNames(bundle *ExportBundle) error {
	seen := make(map[string]string)
	for _, s := range bundle.Tables() {
		folded := strings.ToLower(s.Name)
		if prev, ok := seen[folded]; ok {
			return errs.New(errs.KindFilesystem, fmt.Sprintf("tables %q and %q differ only in case and cannot both be mirrored", prev, s.Name)).WithTable(s.Name)
		}
		seen[folded] = s.Name
	}
	return nil
}

func mirrorTable(ctx context.Context, db *sql.DB, d mirrorDialect, s *TableSnapshot, provider confirm.Provider, log zerolog.Logger) error {
	table := s.Name
	cols := s.ColumnNames()
	if len(cols) == 0 {
		log.Warn().Str("table", s.Name).Msg("Table has no columns, not mirrored")
		return nil
	}

	var tableExists int
	if err := db.QueryRowContext(ctx, d.existsQuery, table).Scan(&tableExists); err != nil {
		return fmt.Errorf("error checking if table exists: %w", err)
	}
	if tableExists > 0 {
		ok, err := provider.Confirm(ctx, fmt.Sprintf("Table '%s' already exists in %s. Delete and recreate?", table, d.file))
		if err != nil {
			return err
		}
		if !ok {
			log.Warn().Str("table", table).Str("file", d.file).Msg("Existing mirror table kept")
			return nil
		}
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+d.quote(table)); err != nil {
			return fmt.Errorf("error dropping table: %w", err)
		}
	}

	colDefs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = d.quote(col)
		colDefs[i] = quoted[i] + " TEXT"
	}
	createStmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.quote(table), strings.Join(colDefs, ", "))
	if _, err := db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("error creating table: %w", err)
	}

	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(table), strings.Join(quoted, ", "), strings.TrimRight(strings.Repeat("?,", len(cols)), ","))
	for from := 0; ; from += mirrorBatchSize {
		to := min(from+mirrorBatchSize, len(s.Rows))
		if err := insertBatch(ctx, db, insertStmt, cols, s.Rows[from:to]); err != nil {
			return err
		}
		if to == len(s.Rows) {
			break
		}
	}
	log.Debug().Str("table", table).Int("rows", len(s.Rows)).Str("file", d.file).Msg("Table mirrored")
	return nil
}

// insertBatch inserts records inside one transaction.
func insertBatch(ctx context.Context, db *sql.DB, insertStmt string, cols []string, records []Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close()

	vals := make([]interface{}, len(cols))
	for _, rec := range records {
		for i, col := range cols {
			v, _ := rec.Value(col)
			vals[i] = textValue(v)
		}
		if _, err := stmt.ExecContext(ctx, vals...); err != nil {
			tx.Rollback()
			return fmt.Errorf("error inserting row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// textValue renders a row value for a TEXT column. NULL stays NULL.
func textValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case []byte:
		return string(t)
	case json.RawMessage:
		return string(t)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}
