package pgsql

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// notFound maps pgx.ErrNoRows to apperrors.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return err
}

// decodeDraft turns a stored payload back into a draft.
func decodeDraft(payload []byte) (*domain.InvoiceDraft, error) {
	var draft domain.InvoiceDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformed, err)
	}
	return &draft, nil
}
