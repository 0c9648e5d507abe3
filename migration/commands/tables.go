package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-bookings/internal/schema"
	"github.com/beesaferoot/gorm-bookings/migration"
)

func TablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Show the tables and columns of the registered models",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.ValidateRegistry(); err != nil {
				return err
			}

			tables, err := schema.TablesFromRegistry(migration.GlobalModelRegistry.GetModels())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, table := range tables {
				fmt.Fprintf(out, "%s\n", table.TableName())
				for _, column := range table.TableColumns() {
					null := "NOT NULL"
					if column.Nullable() {
						null = "NULL"
					}
					fmt.Fprintf(out, "  %-16s  %-16s  %s\n", column.ColumnName(), column.Type(), null)
				}
			}
			return nil
		},
	}
}
