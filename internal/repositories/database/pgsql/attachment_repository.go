package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

func newPgxAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

func (r *PgxAttachmentRepository) FindAttachment(ctx context.Context, owner string) (*domain.Attachment, error) {
	query := `
		SELECT file_name, content_type, content, attached_at
		FROM invoice_attachments
		WHERE owner = $1;
	`
	var a domain.Attachment
	err := r.Pool.QueryRow(ctx, query, owner).Scan(&a.FileName, &a.ContentType, &a.Content, &a.AttachedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to find attachment for %s: %w", owner, notFound(err))
	}
	return &a, nil
}

func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, owner string, attachment domain.Attachment) error {
	query := `
		INSERT INTO invoice_attachments (owner, file_name, content_type, content, attached_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			content_type = EXCLUDED.content_type,
			content = EXCLUDED.content,
			attached_at = EXCLUDED.attached_at;
	`
	_, err := r.Pool.Exec(ctx, query, owner, attachment.FileName, attachment.ContentType, attachment.Content, attachment.AttachedAt)
	if err != nil {
		return fmt.Errorf("failed to save attachment for %s: %w", owner, err)
	}
	return nil
}

func (r *PgxAttachmentRepository) DeleteAttachment(ctx context.Context, owner string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM invoice_attachments WHERE owner = $1;`, owner); err != nil {
		return fmt.Errorf("failed to delete attachment for %s: %w", owner, err)
	}
	return nil
}
