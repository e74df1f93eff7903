package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
)

type attachmentService struct {
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	workspaces     portssvc.WorkspaceWriterSvc
	maxBytes       int64
	now            func() time.Time
}

// NewAttachmentService creates a new AttachmentService. Inline errors are
// recorded on the owner's workspace through workspaces.
func NewAttachmentService(attachmentRepo portsrepo.AttachmentRepositoryFacade, workspaces portssvc.WorkspaceWriterSvc, maxBytes int64) portssvc.AttachmentSvcFacade {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		workspaces:     workspaces,
		maxBytes:       maxBytes,
		now:            time.Now,
	}
}

var _ portssvc.AttachmentSvcFacade = (*attachmentService)(nil)

func isPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == domain.PDFContentType
}

func (s *attachmentService) Accept(ctx context.Context, owner string, upload domain.Upload) (*domain.Attachment, error) {
	if len(upload.Files) != 1 || !isPDF(upload.Files[0].ContentType) {
		return nil, s.reject(ctx, owner, apperrors.ErrUnsupportedType, upload.Source.InvalidFileMessage())
	}
	file := upload.Files[0]
	if int64(len(file.Content)) > s.maxBytes {
		return nil, s.reject(ctx, owner, apperrors.ErrAttachmentTooLarge, domain.MsgAttachmentTooLarge)
	}

	attachment := domain.Attachment{
		FileName:    file.FileName,
		ContentType: domain.PDFContentType,
		Content:     file.Content,
		AttachedAt:  s.now().UTC(),
	}
	if err := s.attachmentRepo.SaveAttachment(ctx, owner, attachment); err != nil {
		return nil, fmt.Errorf("failed to save attachment in service: %w", err)
	}
	if err := s.workspaces.SetAttachmentError(ctx, owner, ""); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Attachment stored",
		slog.String("owner", owner), slog.String("file_name", file.FileName), slog.Int("bytes", len(file.Content)))
	return &attachment, nil
}

// reject records the inline message and returns kind wrapped with it. The
// stored attachment is left alone.
func (s *attachmentService) reject(ctx context.Context, owner string, kind error, message string) error {
	middleware.GetLoggerFromCtx(ctx).Warn("Attachment rejected", slog.String("owner", owner), slog.String("reason", message))
	if err := s.workspaces.SetAttachmentError(ctx, owner, message); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", kind, message)
}

func (s *attachmentService) GetAttachment(ctx context.Context, owner string) (*domain.Attachment, error) {
	attachment, err := s.attachmentRepo.FindAttachment(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment in service: %w", err)
	}
	return attachment, nil
}

func (s *attachmentService) Remove(ctx context.Context, owner string) error {
	if err := s.attachmentRepo.DeleteAttachment(ctx, owner); err != nil {
		return fmt.Errorf("failed to remove attachment in service: %w", err)
	}
	return s.workspaces.SetAttachmentError(ctx, owner, "")
}
