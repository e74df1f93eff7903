package memory

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

// WorkspaceRepository holds live form state. Idle workspaces expire; the
// next request reopens them from the stored draft.
type WorkspaceRepository struct {
	cache *cache.Cache
}

// NewWorkspaceRepository creates a workspace store whose entries expire after idle.
func NewWorkspaceRepository(idle time.Duration) *WorkspaceRepository {
	return &WorkspaceRepository{cache: cache.New(idle, idle/4+time.Minute)}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*WorkspaceRepository)(nil)

func (r *WorkspaceRepository) FindWorkspace(_ context.Context, owner string) (*domain.Workspace, error) {
	raw, found := r.cache.Get(owner)
	if !found {
		return nil, apperrors.ErrNotFound
	}
	return raw.(*domain.Workspace).Clone(), nil
}

func (r *WorkspaceRepository) SaveWorkspace(_ context.Context, workspace *domain.Workspace) error {
	r.cache.Set(workspace.Owner, workspace.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *WorkspaceRepository) DeleteWorkspace(_ context.Context, owner string) error {
	r.cache.Delete(owner)
	return nil
}
