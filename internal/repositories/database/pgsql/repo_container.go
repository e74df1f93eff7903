package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider stores drafts and attachments in PostgreSQL. Live
// workspaces are not persisted and come from workspaces.
func NewRepositoryProvider(dbPool *pgxpool.Pool, workspaces portsrepo.WorkspaceRepositoryFacade) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DraftRepo:      newPgxDraftRepository(dbPool),
		AttachmentRepo: newPgxAttachmentRepository(dbPool),
		WorkspaceRepo:  workspaces,
	}
}
