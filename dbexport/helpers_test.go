package dbexport

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNormalizeValue(t *testing.T) {
	ts := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	cases := []struct {
		name   string
		in     interface{}
		dbType string
		want   interface{}
	}{
		{"nil", nil, "INT", nil},
		{"int64 passthrough", int64(5), "BIGINT", int64(5)},
		{"time passthrough", ts, "DATETIME", ts},
		{"int", []byte("42"), "INT", int64(42)},
		{"unsigned bigint overflow", []byte("18446744073709551615"), "UNSIGNED BIGINT", uint64(18446744073709551615)},
		{"tinyint bool", []byte("1"), "TINYINT", int64(1)},
		{"double", []byte("2.5"), "DOUBLE", 2.5},
		{"double nan", []byte("NaN"), "DOUBLE", "NaN"},
		{"decimal", []byte("12.340"), "DECIMAL", json.Number("12.340")},
		{"json", []byte(`{"k":1}`), "JSON", json.RawMessage(`{"k":1}`)},
		{"bad json", []byte(`{`), "JSON", "{"},
		{"blob", []byte{0x00, 0x01}, "BLOB", []byte{0x00, 0x01}},
		{"varchar", []byte("hello"), "VARCHAR", "hello"},
		{"varchar digits stay text", []byte("007"), "VARCHAR", "007"},
		{"unknown type int", []byte("9"), "", int64(9)},
		{"unknown type float", []byte("9.5"), "", 9.5},
		{"unknown type text", []byte("abc"), "", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeValue(tc.in, tc.dbType)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("normalizeValue(%v, %q) = %#v, want %#v", tc.in, tc.dbType, got, tc.want)
			}
		})
	}
}

func TestScanRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow([]byte("1"), []byte("Ann"), []byte("9.99")),
	)
	rows, err := db.Query("SELECT")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()
	if !rows.Next() {
		t.Fatal("expected a row")
	}

	rec, err := ScanRecord(rows, []string{"id", "name", "price"}, []string{"INT", "VARCHAR"})
	if err != nil {
		t.Fatalf("ScanRecord: %v", err)
	}
	got, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// price has no type name and falls back to number detection
	want := `{"id":1,"name":"Ann","price":9.99}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseFinite(t *testing.T) {
	if _, ok := parseFinite("+Inf"); ok {
		t.Error("expected +Inf to be rejected")
	}
	if f, ok := parseFinite("1e3"); !ok || f != 1000 {
		t.Errorf("parseFinite(1e3) = %v, %v", f, ok)
	}
}
