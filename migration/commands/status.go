package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			out := cmd.OutOrStdout()

			migrator, err := getMigrator(debug)
			if err != nil {
				return err
			}

			statuses, err := migrator.Status()
			if err != nil {
				return fmt.Errorf("failed to get applied migrations: %v", err)
			}

			fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
			for _, s := range statuses {
				status := "Pending"
				if s.Applied {
					status = "Applied"
				}
				fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", s.Version, s.Name, status)
			}

			return nil
		},
	}

	cmd.Flags().Bool("debug", false, "Enable debug output")

	return cmd
}
