package cmd

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tannerpace/sqltojson/config"
)

func newTestCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.SetContext(context.Background())
	return c
}

func TestWithDB_MissingEachEnvVar(t *testing.T) {
	vars := []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_DATABASE"}
	for _, v := range vars {
		resetState(t)
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "root")
		t.Setenv("DB_PASSWORD", "pass")
		t.Setenv("DB_DATABASE", "testdb")
		os.Unsetenv(v)
		err := withDB(newTestCmd(), mockFn)
		if err == nil || !strings.Contains(err.Error(), v) {
			t.Errorf("expected error mentioning %s, got: %v", v, err)
		}
	}
}

func TestWithDB_SuccessfulConnectionAndCallback(t *testing.T) {
	resetState(t)
	flagHost, flagUser, flagPassword, flagDatabase = "localhost", "root", "pass", "testdb"
	mock, calls := stubConnect(t)
	mock.ExpectClose()

	called := false
	err := withDB(newTestCmd(), func(ctx context.Context, db *sql.DB) error {
		called = true
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if !called || *calls != 1 {
		t.Error("expected callback to be called once")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("connection not closed: %v", err)
	}
}

// mockFn is a helper to test the callback logic.
func mockFn(ctx context.Context, db *sql.DB) error {
	return nil
}

func TestWithDB_ConnectionError(t *testing.T) {
	resetState(t)
	flagHost, flagUser, flagPassword, flagDatabase = "localhost", "root", "pass", "testdb"
	orig := connect
	defer func() { connect = orig }()
	connect = func(context.Context, config.Config) (*sql.DB, error) {
		return nil, errors.New("cannot connect to database: refused")
	}
	err := withDB(newTestCmd(), mockFn)
	if err == nil || !strings.Contains(err.Error(), "cannot connect to database") {
		t.Errorf("expected connection error, got: %v", err)
	}
}

func TestWithDB_CallbackError(t *testing.T) {
	resetState(t)
	flagHost, flagUser, flagPassword, flagDatabase = "localhost", "root", "pass", "testdb"
	mock, _ := stubConnect(t)
	mock.ExpectClose()
	cbErr := errors.New("callback fail")
	err := withDB(newTestCmd(), func(ctx context.Context, db *sql.DB) error { return cbErr })
	if !errors.Is(err, cbErr) {
		t.Errorf("expected callback error, got: %v", err)
	}
}

func TestLoadConfig_FlagsOverFile(t *testing.T) {
	resetState(t)
	file := filepath.Join(t.TempDir(), "sqltojson.yaml")
	yaml := "host: file-host\nuser: file-user\nexport_mode: per-table\nmirror: duckdb\n"
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	flagConfig = file
	flagHost = "flag-host"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Host != "flag-host" || cfg.User != "file-user" {
		t.Errorf("unexpected precedence: host %q user %q", cfg.Host, cfg.User)
	}
	if cfg.ExportMode != config.ModePerTable || cfg.Mirror != config.MirrorDuckDB {
		t.Errorf("file values not applied: %+v", cfg)
	}
}
