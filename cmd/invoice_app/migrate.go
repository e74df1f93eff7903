package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/migration"
	"github.com/spf13/cobra"
)

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the storage schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return runMigration(logger, (*migration.Migration).Up)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert every migration, dropping stored drafts",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return runMigration(logger, (*migration.Migration).Down)
			},
		},
	)
	return cmd
}

func runMigration(logger *slog.Logger, step func(*migration.Migration) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	mg := migration.NewMigration(cfg, migration.DefaultEngine)
	if !mg.Enabled() {
		return errors.New("STORAGE_DRIVER=memory has no schema to migrate")
	}
	logger.Info("Running database migrations...", slog.String("driver", cfg.StorageDriver))
	return step(mg)
}
