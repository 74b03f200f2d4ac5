package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func newRootCmd(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerd",
		Short: "Double-entry ledger API server",
		Long: `ledgerd serves the ledger HTTP API: chart of accounts, journal entries,
invoices, fiscal years and currency conversion.

Configuration is read from the environment and an optional .env file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd(logger), newMigrateCmd(logger))
	return rootCmd
}
