package repositories_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositoryProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repos, closeFn, err := repositories.NewRepositoryProvider(ctx, &config.Config{StorageDriver: config.StorageMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.NotNil(t, repos.DraftRepo)
		assert.NotNil(t, repos.AttachmentRepo)
		assert.NotNil(t, repos.WorkspaceRepo)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{StorageDriver: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "drafts.db")}
		repos, closeFn, err := repositories.NewRepositoryProvider(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.NotNil(t, repos.DraftRepo)
		assert.NotNil(t, repos.WorkspaceRepo)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := repositories.NewRepositoryProvider(ctx, &config.Config{StorageDriver: "mongo"})
		assert.Error(t, err)
	})
}
