package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator is the part of *migrate.Migrate used here.
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator. Tests replace it to avoid touching a database.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

// DefaultEngine opens a real golang-migrate instance.
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(cfg *config.Config, engine MigrationEngine) *Migration {
	return &Migration{cfg: cfg, engine: engine}
}

// Enabled reports whether the configured storage driver has a schema.
func (mg *Migration) Enabled() bool {
	return mg.cfg.StorageDriver != config.StorageMemory
}

// URLs returns the migration source and database URLs for the configured driver.
func (mg *Migration) URLs() (string, string, error) {
	source := "file://" + filepath.ToSlash(filepath.Join(mg.cfg.MigrationsPath, mg.cfg.StorageDriver))
	switch mg.cfg.StorageDriver {
	case config.StoragePostgres:
		return source, "pgx5://" + trimScheme(mg.cfg.DatabaseURL), nil
	case config.StorageSQLite:
		return source, "sqlite3://" + mg.cfg.SQLitePath, nil
	}
	return "", "", fmt.Errorf("storage driver %q has no migrations", mg.cfg.StorageDriver)
}

func trimScheme(url string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return rest
		}
	}
	return url
}

// Up applies all pending migrations. ErrNoChange is not an error.
func (mg *Migration) Up() error {
	return mg.run("up", func(m Migrator) error { return m.Up() })
}

// Down reverts every migration.
func (mg *Migration) Down() error {
	return mg.run("down", func(m Migrator) error { return m.Down() })
}

func (mg *Migration) run(direction string, step func(Migrator) error) (err error) {
	source, database, err := mg.URLs()
	if err != nil {
		return err
	}
	m, err := mg.engine(source, database)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	if err := step(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("No new migrations to apply.", slog.String("direction", direction))
			return nil
		}
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}
	slog.Info("Database migrations applied successfully.", slog.String("direction", direction), slog.String("driver", mg.cfg.StorageDriver))
	return nil
}
