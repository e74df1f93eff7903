package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
)

type SQLiteAttachmentRepository struct {
	BaseRepository
}

func NewAttachmentRepository(db *sql.DB) *SQLiteAttachmentRepository {
	return &SQLiteAttachmentRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AttachmentRepositoryFacade = (*SQLiteAttachmentRepository)(nil)

func (r *SQLiteAttachmentRepository) FindAttachment(ctx context.Context, owner string) (*domain.Attachment, error) {
	var a domain.Attachment
	err := r.DB.QueryRowContext(ctx, `
		SELECT file_name, content_type, content, attached_at
		FROM invoice_attachments
		WHERE owner = ?
	`, owner).Scan(&a.FileName, &a.ContentType, &a.Content, &a.AttachedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to find attachment for %s: %w", owner, notFound(err))
	}
	return &a, nil
}

func (r *SQLiteAttachmentRepository) SaveAttachment(ctx context.Context, owner string, attachment domain.Attachment) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO invoice_attachments (owner, file_name, content_type, content, attached_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (owner) DO UPDATE SET
			file_name = excluded.file_name,
			content_type = excluded.content_type,
			content = excluded.content,
			attached_at = excluded.attached_at
	`, owner, attachment.FileName, attachment.ContentType, attachment.Content, attachment.AttachedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save attachment for %s: %w", owner, err)
	}
	return nil
}

func (r *SQLiteAttachmentRepository) DeleteAttachment(ctx context.Context, owner string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM invoice_attachments WHERE owner = ?`, owner); err != nil {
		return fmt.Errorf("failed to delete attachment for %s: %w", owner, err)
	}
	return nil
}
