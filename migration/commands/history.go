package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func HistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show migration history",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			migrator, err := getMigrator(false)
			if err != nil {
				return err
			}

			records, err := migrator.History()
			if err != nil {
				return fmt.Errorf("failed to get migration history: %v", err)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No migrations have been applied yet.")
				return nil
			}

			fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", "Version", "Name", "Applied At")
			for _, record := range records {
				fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", record.Version, record.Name, record.AppliedAt.Format(time.RFC3339))
			}

			return nil
		},
	}
}
