package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tannerpace/sqltojson/dbexport"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <table>",
	Short: "List the columns of a table with their TypeScript types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
			cols, err := dbexport.ListColumns(ctx, db, table)
			if err != nil {
				return withTableHint(err)
			}
			if len(cols) == 0 {
				return withTableHint(fmt.Errorf("table %q does not exist or has no columns", table))
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tTYPE\tNULLABLE\tTS TYPE")
			for _, c := range cols {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", c.Name, c.RawType, c.Nullable, dbexport.MapType(c.RawType).TypeScript())
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
