package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-bookings/migration"
)

func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.Validate(migration.GetRegisteredMigrations()); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			if err := migration.ValidateRegistry(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All migrations are valid")
			return nil
		},
	}
}
