package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerpace/sqltojson/dbexport"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List all tables in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
			tables, err := dbexport.ListTables(ctx, db)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range tables {
				fmt.Fprintln(out, t)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
