package repositories

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// DraftReader defines read operations for stored invoice drafts.
type DraftReader interface {
	// FindDraft retrieves the owner's draft. It returns apperrors.ErrNotFound when
	// nothing was saved yet and apperrors.ErrMalformed when the stored payload
	// cannot be decoded.
	FindDraft(ctx context.Context, owner string) (*domain.InvoiceDraft, error)
}

// DraftWriter defines write operations for stored invoice drafts.
type DraftWriter interface {
	// SaveDraft overwrites the owner's draft as a whole.
	SaveDraft(ctx context.Context, owner string, draft domain.InvoiceDraft) error
}

// DraftRepositoryFacade combines all draft-related repository interfaces.
type DraftRepositoryFacade interface {
	DraftReader
	DraftWriter
}
