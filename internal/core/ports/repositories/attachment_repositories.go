package repositories

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// AttachmentReader defines read operations for the attachment slot.
type AttachmentReader interface {
	// FindAttachment returns apperrors.ErrNotFound for an empty slot.
	FindAttachment(ctx context.Context, owner string) (*domain.Attachment, error)
}

// AttachmentWriter defines write operations for the attachment slot.
type AttachmentWriter interface {
	SaveAttachment(ctx context.Context, owner string, attachment domain.Attachment) error
	// DeleteAttachment empties the slot. Deleting an empty slot is not an error.
	DeleteAttachment(ctx context.Context, owner string) error
}

// AttachmentRepositoryFacade combines all attachment-related repository interfaces.
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
