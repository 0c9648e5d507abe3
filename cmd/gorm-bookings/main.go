package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-bookings/migration"
	"github.com/beesaferoot/gorm-bookings/migration/commands"
	_ "github.com/beesaferoot/gorm-bookings/migrations"
	"github.com/beesaferoot/gorm-bookings/models"
)

type modelRegistry struct{}

func (modelRegistry) GetModels() map[string]interface{} {
	return models.ModelTypeRegistry
}

func init() {
	migration.GlobalModelRegistry = modelRegistry{}
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gorm-bookings",
		Short:         "Bookable resources, pricing and bookings for GORM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		commands.InitCmd(),
		commands.CreateCmd(),
		commands.RegisterCmd(),
		commands.UpCmd(),
		commands.DownCmd(),
		commands.StatusCmd(),
		commands.HistoryCmd(),
		commands.ValidateCmd(),
		commands.TablesCmd(),
		commands.CheckCmd(),
		QuoteCmd(),
		ServeCmd(),
	)

	return rootCmd
}
