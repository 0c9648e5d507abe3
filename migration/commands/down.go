package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func DownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")

			migrator, err := getMigrator(debug)
			if err != nil {
				return err
			}

			reverted, err := migrator.Down()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully reverted migration: %s\n", reverted.Name)
			return nil
		},
	}

	cmd.Flags().Bool("debug", false, "Enable debug output")

	return cmd
}
