package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for form fields and boundaries on top of the file limit.
const multipartOverhead = 1 << 20

type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvcFacade
	workspaceService  portssvc.WorkspaceWriterSvc
	maxBytes          int64
}

func newAttachmentHandler(as portssvc.AttachmentSvcFacade, ws portssvc.WorkspaceWriterSvc, maxBytes int64) *attachmentHandler {
	return &attachmentHandler{attachmentService: as, workspaceService: ws, maxBytes: maxBytes}
}

func registerAttachmentRoutes(rg *gin.RouterGroup, as portssvc.AttachmentSvcFacade, ws portssvc.WorkspaceWriterSvc, maxBytes int64) {
	h := newAttachmentHandler(as, ws, maxBytes)

	attachment := rg.Group("/attachment")
	{
		attachment.POST("", h.upload)
		attachment.GET("", h.download)
		attachment.DELETE("", h.remove)
	}
}

// readUpload collects the files posted under "file" and the "source" field.
// Bodies above the size limit are reported as apperrors.ErrAttachmentTooLarge.
func readUpload(c *gin.Context, maxBytes int64) (domain.Upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Upload{}, fmt.Errorf("%w: %s", apperrors.ErrAttachmentTooLarge, domain.MsgAttachmentTooLarge)
		}
		return domain.Upload{}, fmt.Errorf("%w: expected a multipart form: %v", apperrors.ErrValidation, err)
	}

	upload := domain.Upload{Source: domain.SourceSelect}
	if sources := form.Value["source"]; len(sources) > 0 && sources[0] == string(domain.SourceDrop) {
		upload.Source = domain.SourceDrop
	}
	for _, fh := range form.File["file"] {
		file, err := readUploadedFile(fh, maxBytes)
		if err != nil {
			return domain.Upload{}, err
		}
		upload.Files = append(upload.Files, file)
	}
	return upload, nil
}

func readUploadedFile(fh *multipart.FileHeader, maxBytes int64) (domain.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	// One byte over the limit is enough for the service to reject it.
	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return domain.UploadedFile{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// acceptUpload reads the request and hands it to the attachment service.
func acceptUpload(c *gin.Context, owner string, attachments portssvc.AttachmentSvcFacade, workspaces portssvc.WorkspaceWriterSvc, maxBytes int64) (*domain.Attachment, error) {
	upload, err := readUpload(c, maxBytes)
	if err != nil {
		if errors.Is(err, apperrors.ErrAttachmentTooLarge) {
			if serr := workspaces.SetAttachmentError(c.Request.Context(), owner, domain.MsgAttachmentTooLarge); serr != nil {
				return nil, serr
			}
		}
		return nil, err
	}
	return attachments.Accept(c.Request.Context(), owner, upload)
}

// upload godoc
// @Summary Attach the invoice PDF
// @Description Replaces the attached file. Exactly one PDF is accepted; rejections keep the current file.
// @Tags attachment
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Param source formData string false "select or drop"
// @Success 200 {object} dto.AttachmentResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attachment [post]
func (h *attachmentHandler) upload(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}
	attachment, err := acceptUpload(c, owner, h.attachmentService, h.workspaceService, h.maxBytes)
	if err != nil {
		respondError(c, err, "Failed to store attachment")
		return
	}
	attachedAt := attachment.AttachedAt
	c.JSON(http.StatusOK, dto.AttachmentResponse{
		State:      domain.AttachmentAttached,
		FileName:   attachment.FileName,
		AttachedAt: &attachedAt,
	})
}

// download godoc
// @Summary Get the attached PDF
// @Tags attachment
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attachment [get]
func (h *attachmentHandler) download(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}
	serveAttachment(c, h.attachmentService, owner, respondError)
}

// serveAttachment writes the owner's PDF inline, or calls onError.
func serveAttachment(c *gin.Context, attachments portssvc.AttachmentSvcFacade, owner string, onError func(*gin.Context, error, string)) {
	attachment, err := attachments.GetAttachment(c.Request.Context(), owner)
	if err != nil {
		onError(c, err, "Failed to load attachment")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachment.FileName))
	c.Data(http.StatusOK, attachment.ContentType, attachment.Content)
}

// remove godoc
// @Summary Remove the attached PDF
// @Tags attachment
// @Success 204
// @Security BearerAuth
// @Router /attachment [delete]
func (h *attachmentHandler) remove(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}
	if err := h.attachmentService.Remove(c.Request.Context(), owner); err != nil {
		respondError(c, err, "Failed to remove attachment")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Attachment removed", slog.String("owner", owner))
	c.Status(http.StatusNoContent)
}
