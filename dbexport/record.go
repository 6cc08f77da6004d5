package dbexport

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one row: column names and values in select order. It marshals to
// a JSON object whose keys keep that order.
type Record struct {
	columns []string
	values  []interface{}
}

// NewRecord pairs columns with values. Both slices must have the same length.
func NewRecord(columns []string, values []interface{}) Record {
	return Record{columns: columns, values: values}
}

func (r Record) Columns() []string { return r.columns }

func (r Record) Len() int { return len(r.columns) }

// Value returns the value of column name.
func (r Record) Value(name string) (interface{}, bool) {
	for i, c := range r.columns {
		if c == name {
			return r.values[i], true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(col, "")
		if err != nil {
			return nil, err
		}
		val, err := encodeJSON(r.values[i], "")
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExportBundle collects the snapshots of one run in discovery order.
type ExportBundle struct {
	order  []string
	tables map[string]*TableSnapshot
}

func NewExportBundle() *ExportBundle {
	return &ExportBundle{tables: make(map[string]*TableSnapshot)}
}

// Add stores s. Adding a name twice replaces the earlier snapshot in place.
func (b *ExportBundle) Add(s *TableSnapshot) {
	if _, ok := b.tables[s.Name]; !ok {
		b.order = append(b.order, s.Name)
	}
	b.tables[s.Name] = s
}

// Get returns the snapshot for table.
func (b *ExportBundle) Get(table string) (*TableSnapshot, bool) {
	s, ok := b.tables[table]
	return s, ok
}

// Tables returns the snapshots in discovery order.
func (b *ExportBundle) Tables() []*TableSnapshot {
	out := make([]*TableSnapshot, len(b.order))
	for i, name := range b.order {
		out[i] = b.tables[name]
	}
	return out
}

func (b *ExportBundle) Len() int { return len(b.order) }

// MarshalJSON writes {"table": [rows...], ...} with tables in discovery order.
func (b *ExportBundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range b.Tables() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(s.Name, "")
		if err != nil {
			return nil, err
		}
		rows, err := encodeJSON(rowsOf(s), "")
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", s.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(rows)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// rowsOf never returns nil so empty tables encode as [] rather than null.
func rowsOf(s *TableSnapshot) []Record {
	if s.Rows == nil {
		return []Record{}
	}
	return s.Rows
}

// encodeJSON is json.Marshal (or MarshalIndent when indent is set) without
// escaping <, > and &, and without the encoder's trailing newline.
func encodeJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
