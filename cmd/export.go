package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerpace/sqltojson/confirm"
	"github.com/tannerpace/sqltojson/dbexport"
)

// Export flags, on the root command only.
var (
	flagMode        string
	flagOut         string
	flagInteractive bool
	flagGoTypes     bool
	flagGoPackage   string
	flagMirror      string
)

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var provider confirm.Provider = confirm.AlwaysYes{}
	if flagInteractive {
		provider = confirm.NewInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		cfg.AskMode = true
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	orch := &dbexport.Orchestrator{
		Config:  cfg,
		Confirm: provider,
		Connect: connect,
		Log:     newLogger(cmd),
	}
	res, err := orch.Run(ctx)
	if err != nil {
		return withTableHint(err)
	}
	if res.Status == dbexport.StatusDeclined {
		fmt.Fprintln(cmd.OutOrStdout(), "Export cancelled.")
	}
	return nil
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagMode, "mode", "", "Row data output: single-file, per-table or both (env: EXPORT_MODE)")
	f.StringVar(&flagOut, "out", "", "Output directory (env: EXPORT_DIR, default .)")
	f.BoolVar(&flagInteractive, "interactive", false, "Ask before exporting and choose the output files interactively")
	f.BoolVar(&flagGoTypes, "go-types", false, "Also write database_types.go with one Go struct per table")
	f.StringVar(&flagGoPackage, "go-package", "", "Package name for database_types.go (default models)")
	f.StringVar(&flagMirror, "mirror", "", "Also copy the rows into a local database: sqlite3 or duckdb (env: EXPORT_MIRROR)")
}
