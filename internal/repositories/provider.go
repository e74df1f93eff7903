package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories/memory"
	"github.com/SscSPs/invoice_drafting_app/pkg/database"
)

// NewRepositoryProvider builds the repositories for cfg.StorageDriver. The
// returned close function releases the underlying connections.
func NewRepositoryProvider(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	workspaces := memory.NewWorkspaceRepository(memory.WorkspaceIdleTimeout)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool, workspaces), func() { database.ClosePgxPool(pool) }, nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				slog.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(db, workspaces), closeFn, nil

	case config.StorageMemory, "":
		slog.Warn("Using in-memory storage; drafts are lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
