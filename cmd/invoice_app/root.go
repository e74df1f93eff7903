package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// newRootCmd builds the invoice_app command tree. Running it without a
// subcommand starts the server.
func newRootCmd(logger *slog.Logger) *cobra.Command {
	serveCmd := newServeCmd(logger)

	root := &cobra.Command{
		Use:   "invoice_app",
		Short: "Invoice drafting web application",
		Long: `invoice_app serves the invoice drafting form and its JSON API.

Configuration is read from the environment and an optional .env file.
See STORAGE_DRIVER, PGSQL_URL, SQLITE_PATH and LOGIN_RATE_LIMIT.`,
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	root.AddCommand(serveCmd, newMigrateCmd(logger))
	return root
}
