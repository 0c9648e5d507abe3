package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-bookings/internal/schema"
	"github.com/beesaferoot/gorm-bookings/migration"
)

func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the registered models against the live database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.ValidateRegistry(); err != nil {
				return err
			}

			tables, err := schema.TablesFromRegistry(migration.GlobalModelRegistry.GetModels())
			if err != nil {
				return err
			}

			db, err := openDB(false)
			if err != nil {
				return err
			}

			drifts, err := schema.Drift(db, tables)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(drifts) == 0 {
				fmt.Fprintln(out, "Schema is up to date.")
				return nil
			}

			for _, d := range drifts {
				if d.Missing {
					fmt.Fprintf(out, "%s: table missing\n", d.Table)
					continue
				}
				if len(d.MissingColumns) > 0 {
					fmt.Fprintf(out, "%s: missing columns %s\n", d.Table, strings.Join(d.MissingColumns, ", "))
				}
				if len(d.ExtraColumns) > 0 {
					fmt.Fprintf(out, "%s: unknown columns %s\n", d.Table, strings.Join(d.ExtraColumns, ", "))
				}
			}
			return fmt.Errorf("schema drift in %d table(s); run 'up' or create a migration", len(drifts))
		},
	}
	return cmd
}
