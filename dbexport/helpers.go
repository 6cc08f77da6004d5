package dbexport

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScanRecord scans the current row into a Record, converting driver values
// with normalizeValue. dbTypes holds the database type name of each column
// and may be shorter than cols.
func ScanRecord(rows *sql.Rows, cols []string, dbTypes []string) (Record, error) {
	values := make([]interface{}, len(cols))
	pointers := make([]interface{}, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return Record{}, fmt.Errorf("error scanning row: %w", err)
	}
	for i := range values {
		dbType := ""
		if i < len(dbTypes) {
			dbType = dbTypes[i]
		}
		values[i] = normalizeValue(values[i], dbType)
	}
	return NewRecord(cols, values), nil
}

// normalizeValue turns the raw bytes the MySQL text protocol returns into
// values that encode naturally as JSON. Non-byte values (nil, int64,
// float64, time.Time) pass through unchanged.
func normalizeValue(v interface{}, dbType string) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	switch strings.TrimPrefix(strings.ToUpper(dbType), "UNSIGNED ") {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n
		}
		return s
	case "FLOAT", "DOUBLE", "REAL":
		if f, ok := parseFinite(s); ok {
			return f
		}
		return s
	case "DECIMAL", "NUMERIC":
		// json.Number keeps every digit of the stored value.
		if _, ok := parseFinite(s); ok {
			return json.Number(s)
		}
		return s
	case "JSON":
		if json.Valid(b) {
			return json.RawMessage(b)
		}
		return s
	case "BINARY", "VARBINARY", "TINYBLOB", "BLOB", "MEDIUMBLOB", "LONGBLOB", "BIT", "GEOMETRY":
		return b
	case "":
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, ok := parseFinite(s); ok {
			return f
		}
		return s
	default:
		return s
	}
}

// parseFinite parses s as a float, rejecting NaN and infinities which JSON
// cannot represent.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
