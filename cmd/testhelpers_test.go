package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tannerpace/sqltojson/config"
)

var envVars = []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_DATABASE", "EXPORT_MODE", "EXPORT_DIR", "EXPORT_MIRROR"}

// containsAll returns true if all substrings in subs are present in s.
func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// resetState puts every flag back to its default and clears the
// environment Load reads, since cobra commands are package globals.
func resetState(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, c := range cmds {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	for _, v := range envVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

// runCLI executes the root command with args and returns everything written
// to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetState(t)
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// stubConnect makes every command connect to a sqlmock database and counts
// the connections made.
func stubConnect(t *testing.T) (sqlmock.Sqlmock, *int) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	calls := 0
	orig := connect
	t.Cleanup(func() { connect = orig })
	connect = func(context.Context, config.Config) (*sql.DB, error) {
		calls++
		return db, nil
	}
	return mock, &calls
}

// connFlags are valid connection flags with logging switched off.
func connFlags(extra ...string) []string {
	return append([]string{
		"--host", "localhost",
		"--user", "root",
		"--password", "secret",
		"--database", "shop",
		"--log-level", "disabled",
	}, extra...)
}
