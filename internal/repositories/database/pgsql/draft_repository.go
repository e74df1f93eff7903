package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDraftRepository struct {
	BaseRepository
}

// newPgxDraftRepository creates a new repository for invoice drafts.
func newPgxDraftRepository(pool *pgxpool.Pool) portsrepo.DraftRepositoryFacade {
	return &PgxDraftRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DraftRepositoryFacade = (*PgxDraftRepository)(nil)

// FindDraft retrieves the owner's draft payload and decodes it.
func (r *PgxDraftRepository) FindDraft(ctx context.Context, owner string) (*domain.InvoiceDraft, error) {
	query := `SELECT payload FROM invoice_drafts WHERE owner = $1;`

	var payload []byte
	if err := r.Pool.QueryRow(ctx, query, owner).Scan(&payload); err != nil {
		return nil, fmt.Errorf("failed to find draft for %s: %w", owner, notFound(err))
	}
	return decodeDraft(payload)
}

// SaveDraft inserts or replaces the owner's draft.
func (r *PgxDraftRepository) SaveDraft(ctx context.Context, owner string, draft domain.InvoiceDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft for %s: %w", owner, err)
	}

	query := `
		INSERT INTO invoice_drafts (owner, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, owner, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save draft for %s: %w", owner, err)
	}
	return nil
}
