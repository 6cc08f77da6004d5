package cmd

import (
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestFields_Help(t *testing.T) {
	out, err := runCLI(t, "", "fields", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsAll(out, []string{"Usage:", "fields <table>"}) {
		t.Errorf("expected help output for fields, got: %s", out)
	}
}

func TestFields_RequiresTable(t *testing.T) {
	_, err := runCLI(t, "", append([]string{"fields"}, connFlags()...)...)
	if err == nil || !strings.Contains(err.Error(), "accepts 1 arg") {
		t.Errorf("expected argument error, got %v", err)
	}
}

func TestFields_List(t *testing.T) {
	mock, _ := stubConnect(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `users`")).WillReturnRows(
		sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int(11)", "NO", "PRI", nil, "auto_increment").
			AddRow("email", "varchar(255)", "YES", "", nil, "").
			AddRow("active", "tinyint(1)", "NO", "", "1", ""),
	)
	mock.ExpectClose()

	out, err := runCLI(t, "", append([]string{"fields", "users"}, connFlags()...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got: %q", out)
	}
	checks := [][]string{
		{"COLUMN", "TYPE", "NULLABLE", "TS TYPE"},
		{"id", "int(11)", "false", "number"},
		{"email", "varchar(255)", "true", "string"},
		{"active", "tinyint(1)", "false", "boolean"},
	}
	for i, want := range checks {
		if got := strings.Fields(lines[i]); strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("line %d = %q, want %v", i, lines[i], want)
		}
	}
}

func TestFields_MissingTable(t *testing.T) {
	mock, _ := stubConnect(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'shop.nope' doesn't exist"})
	mock.ExpectClose()

	_, err := runCLI(t, "", append([]string{"fields", "nope"}, connFlags()...)...)
	if err == nil || !strings.Contains(err.Error(), "check that nope exists") {
		t.Errorf("expected missing-table hint, got %v", err)
	}
}
