package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Connection and logging flags, shared by every command.
var (
	flagHost      string
	flagPort      string
	flagUser      string
	flagPassword  string
	flagDatabase  string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

// exitFunc is replaced in tests.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "sqltojson",
	Short: "Export a MySQL database to JSON and TypeScript interfaces",
	Long:  `sqltojson reads every table of a MySQL database and writes the rows to
database_export.json (and/or one <table>.json per table) together with a
database_types.d.ts file holding one TypeScript interface per table.

Connection settings come from flags, the environment (DB_HOST, DB_PORT,
DB_USER, DB_PASSWORD, DB_DATABASE), a .env file or a YAML file given with
--config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		exitFunc(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", "", "MySQL hostname or IP (env: DB_HOST)")
	pf.StringVar(&flagPort, "port", "", "MySQL port (env: DB_PORT, default 3306)")
	pf.StringVar(&flagUser, "user", "", "MySQL username (env: DB_USER)")
	pf.StringVar(&flagPassword, "password", "", "MySQL password (env: DB_PASSWORD)")
	pf.StringVar(&flagDatabase, "database", "", "MySQL database name (env: DB_DATABASE)")
	pf.StringVar(&flagConfig, "config", "", "YAML configuration file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "console", "Log format: console or json")
}
