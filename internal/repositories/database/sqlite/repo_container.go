package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
)

// NewRepositoryProvider stores drafts and attachments in SQLite. Live
// workspaces come from workspaces.
func NewRepositoryProvider(db *sql.DB, workspaces portsrepo.WorkspaceRepositoryFacade) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DraftRepo:      NewDraftRepository(db),
		AttachmentRepo: NewAttachmentRepository(db),
		WorkspaceRepo:  workspaces,
	}
}
