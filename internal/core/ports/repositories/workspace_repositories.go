package repositories

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// WorkspaceRepositoryFacade keeps the live, unsaved form state of each user.
// Implementations must store copies so callers cannot alias stored state.
type WorkspaceRepositoryFacade interface {
	// FindWorkspace returns apperrors.ErrNotFound when no workspace is open.
	FindWorkspace(ctx context.Context, owner string) (*domain.Workspace, error)
	SaveWorkspace(ctx context.Context, workspace *domain.Workspace) error
	DeleteWorkspace(ctx context.Context, owner string) error
}
