package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

const draftKeyPrefix = "invoiceFormData:"

// DraftRepository keeps drafts serialized as JSON, the way a browser keeps
// them in local storage. Entries never expire.
type DraftRepository struct {
	cache *cache.Cache
}

// NewDraftRepository creates a draft repository on top of c.
func NewDraftRepository(c *cache.Cache) *DraftRepository {
	return &DraftRepository{cache: c}
}

var _ portsrepo.DraftRepositoryFacade = (*DraftRepository)(nil)

func (r *DraftRepository) FindDraft(_ context.Context, owner string) (*domain.InvoiceDraft, error) {
	raw, found := r.cache.Get(draftKeyPrefix + owner)
	if !found {
		return nil, apperrors.ErrNotFound
	}
	payload, ok := raw.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected %T in draft slot", apperrors.ErrMalformed, raw)
	}
	var draft domain.InvoiceDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformed, err)
	}
	return &draft, nil
}

func (r *DraftRepository) SaveDraft(_ context.Context, owner string, draft domain.InvoiceDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft for %s: %w", owner, err)
	}
	r.cache.Set(draftKeyPrefix+owner, payload, cache.NoExpiration)
	return nil
}

// SaveRaw stores an arbitrary payload in the owner's draft slot.
func (r *DraftRepository) SaveRaw(owner string, payload []byte) {
	r.cache.Set(draftKeyPrefix+owner, payload, cache.NoExpiration)
}
