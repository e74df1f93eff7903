package services

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// AttachmentSvcFacade manages the single-file attachment slot.
type AttachmentSvcFacade interface {
	// Accept stores the uploaded PDF, replacing any previous one. Rejections
	// leave the slot as it was and are reported inline on the workspace.
	Accept(ctx context.Context, owner string, upload domain.Upload) (*domain.Attachment, error)
	GetAttachment(ctx context.Context, owner string) (*domain.Attachment, error)
	Remove(ctx context.Context, owner string) error
}
