package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize migration tracking table in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, err := getMigrator(false)
			if err != nil {
				return err
			}

			if err := migrator.EnsureVersionTable(); err != nil {
				return fmt.Errorf("failed to create migration_records table: %v", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migration system initialized successfully")
			return nil
		},
	}
}
