package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_drafting_app/internal/core/services"
	"github.com/SscSPs/invoice_drafting_app/internal/handlers"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/migration"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(logger *slog.Logger) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cmd.Context(), logger, cfg, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
	return cmd
}

func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, runMigrations bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Run Database Migrations ---
	mg := migration.NewMigration(cfg, migration.DefaultEngine)
	if runMigrations && mg.Enabled() {
		logger.Info("Running database migrations...", slog.String("driver", cfg.StorageDriver))
		if err := mg.Up(); err != nil {
			return err
		}
	}

	repos, closeRepos, err := repositories.NewRepositoryProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeRepos()
	logger.Info("Storage ready", slog.String("driver", cfg.StorageDriver))

	serviceContainer, err := services.NewServiceContainer(cfg, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	return r.Run(":" + cfg.Port)
}
