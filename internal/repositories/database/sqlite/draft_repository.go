package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
)

type SQLiteDraftRepository struct {
	BaseRepository
}

// NewDraftRepository creates a draft repository backed by an SQLite database.
func NewDraftRepository(db *sql.DB) *SQLiteDraftRepository {
	return &SQLiteDraftRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.DraftRepositoryFacade = (*SQLiteDraftRepository)(nil)

func (r *SQLiteDraftRepository) FindDraft(ctx context.Context, owner string) (*domain.InvoiceDraft, error) {
	var payload []byte
	err := r.DB.QueryRowContext(ctx, `SELECT payload FROM invoice_drafts WHERE owner = ?`, owner).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to find draft for %s: %w", owner, notFound(err))
	}
	return decodeDraft(payload)
}

func (r *SQLiteDraftRepository) SaveDraft(ctx context.Context, owner string, draft domain.InvoiceDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft for %s: %w", owner, err)
	}
	return r.SaveRaw(ctx, owner, payload)
}

// SaveRaw stores payload as the owner's draft without encoding it.
func (r *SQLiteDraftRepository) SaveRaw(ctx context.Context, owner string, payload []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO invoice_drafts (owner, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (owner) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, owner, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save draft for %s: %w", owner, err)
	}
	return nil
}
