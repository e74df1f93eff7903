package memory

import (
	"time"

	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

// WorkspaceIdleTimeout is how long an untouched workspace is kept in memory.
const WorkspaceIdleTimeout = 24 * time.Hour

// NewRepositoryProvider keeps everything in process memory.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	storage := cache.New(cache.NoExpiration, 0)
	return portsrepo.RepositoryProvider{
		DraftRepo:      NewDraftRepository(storage),
		AttachmentRepo: NewAttachmentRepository(storage),
		WorkspaceRepo:  NewWorkspaceRepository(WorkspaceIdleTimeout),
	}
}
