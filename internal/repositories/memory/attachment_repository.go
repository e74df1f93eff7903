package memory

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

const attachmentKeyPrefix = "pdfFile:"

type AttachmentRepository struct {
	cache *cache.Cache
}

func NewAttachmentRepository(c *cache.Cache) *AttachmentRepository {
	return &AttachmentRepository{cache: c}
}

var _ portsrepo.AttachmentRepositoryFacade = (*AttachmentRepository)(nil)

func (r *AttachmentRepository) FindAttachment(_ context.Context, owner string) (*domain.Attachment, error) {
	raw, found := r.cache.Get(attachmentKeyPrefix + owner)
	if !found {
		return nil, apperrors.ErrNotFound
	}
	stored := raw.(domain.Attachment)
	return copyAttachment(stored), nil
}

func (r *AttachmentRepository) SaveAttachment(_ context.Context, owner string, attachment domain.Attachment) error {
	r.cache.Set(attachmentKeyPrefix+owner, *copyAttachment(attachment), cache.NoExpiration)
	return nil
}

func (r *AttachmentRepository) DeleteAttachment(_ context.Context, owner string) error {
	r.cache.Delete(attachmentKeyPrefix + owner)
	return nil
}

func copyAttachment(a domain.Attachment) *domain.Attachment {
	out := a
	out.Content = append([]byte(nil), a.Content...)
	return &out
}
