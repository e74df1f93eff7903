package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/core/services"
	"github.com/SscSPs/invoice_drafting_app/internal/repositories/memory"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var pdfBytes = []byte("%PDF-1.4\n%%EOF\n")

func pdfUpload(source domain.AttachmentSource, name string) domain.Upload {
	return domain.Upload{
		Source: source,
		Files:  []domain.UploadedFile{{FileName: name, ContentType: domain.PDFContentType, Content: pdfBytes}},
	}
}

type AttachmentServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	repo       *memory.AttachmentRepository
	workspaces portssvc.WorkspaceSvcFacade
	service    portssvc.AttachmentSvcFacade
}

func (suite *AttachmentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	storage := cache.New(cache.NoExpiration, 0)
	suite.repo = memory.NewAttachmentRepository(storage)
	suite.workspaces = services.NewWorkspaceService(memory.NewDraftRepository(storage), memory.NewWorkspaceRepository(time.Hour))
	suite.service = services.NewAttachmentService(suite.repo, suite.workspaces, 1<<10)
}

func (suite *AttachmentServiceTestSuite) attachmentError() string {
	ws, err := suite.workspaces.GetWorkspace(suite.ctx, owner)
	suite.Require().NoError(err)
	return ws.AttachmentError
}

func (suite *AttachmentServiceTestSuite) TestAccept_PDF() {
	attachment, err := suite.service.Accept(suite.ctx, owner, pdfUpload(domain.SourceSelect, "invoice.pdf"))

	suite.Require().NoError(err)
	suite.Equal("invoice.pdf", attachment.FileName)
	suite.Empty(suite.attachmentError())

	stored, err := suite.service.GetAttachment(suite.ctx, owner)
	suite.Require().NoError(err)
	suite.Equal(pdfBytes, stored.Content)
	suite.Equal(domain.PDFContentType, stored.ContentType)
}

func (suite *AttachmentServiceTestSuite) TestAccept_ContentTypeWithParameters() {
	upload := pdfUpload(domain.SourceDrop, "scan.pdf")
	upload.Files[0].ContentType = "application/pdf; charset=binary"

	_, err := suite.service.Accept(suite.ctx, owner, upload)
	suite.Require().NoError(err)
}

func (suite *AttachmentServiceTestSuite) TestAccept_RejectsNonPDF() {
	_, err := suite.service.Accept(suite.ctx, owner, pdfUpload(domain.SourceSelect, "first.pdf"))
	suite.Require().NoError(err)

	tests := []struct {
		name    string
		upload  domain.Upload
		message string
	}{
		{
			name: "selected png",
			upload: domain.Upload{Source: domain.SourceSelect, Files: []domain.UploadedFile{
				{FileName: "photo.png", ContentType: "image/png", Content: []byte("png")},
			}},
			message: "Please upload a valid PDF file",
		},
		{
			name: "dropped text",
			upload: domain.Upload{Source: domain.SourceDrop, Files: []domain.UploadedFile{
				{FileName: "notes.txt", ContentType: "text/plain", Content: []byte("hi")},
			}},
			message: "Please drop a valid PDF file",
		},
		{
			name:    "nothing dropped",
			upload:  domain.Upload{Source: domain.SourceDrop},
			message: "Please drop a valid PDF file",
		},
		{
			name: "two files",
			upload: domain.Upload{Source: domain.SourceDrop, Files: []domain.UploadedFile{
				{FileName: "a.pdf", ContentType: domain.PDFContentType, Content: pdfBytes},
				{FileName: "b.pdf", ContentType: domain.PDFContentType, Content: pdfBytes},
			}},
			message: "Please drop a valid PDF file",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			attachment, err := suite.service.Accept(suite.ctx, owner, tt.upload)

			suite.Nil(attachment)
			suite.ErrorIs(err, apperrors.ErrUnsupportedType)
			suite.Equal(tt.message, suite.attachmentError())

			stored, err := suite.service.GetAttachment(suite.ctx, owner)
			suite.Require().NoError(err)
			suite.Equal("first.pdf", stored.FileName)
		})
	}

	_, err = suite.service.Accept(suite.ctx, owner, pdfUpload(domain.SourceDrop, "second.pdf"))
	suite.Require().NoError(err)
	suite.Empty(suite.attachmentError())
}

func (suite *AttachmentServiceTestSuite) TestAccept_TooLarge() {
	upload := pdfUpload(domain.SourceSelect, "big.pdf")
	upload.Files[0].Content = make([]byte, 2<<10)

	_, err := suite.service.Accept(suite.ctx, owner, upload)

	suite.ErrorIs(err, apperrors.ErrAttachmentTooLarge)
	suite.Equal(domain.MsgAttachmentTooLarge, suite.attachmentError())
	_, err = suite.service.GetAttachment(suite.ctx, owner)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AttachmentServiceTestSuite) TestRemove() {
	_, err := suite.service.Accept(suite.ctx, owner, pdfUpload(domain.SourceSelect, "invoice.pdf"))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Remove(suite.ctx, owner))
	suite.Require().NoError(suite.service.Remove(suite.ctx, owner))

	_, err = suite.service.GetAttachment(suite.ctx, owner)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAttachmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentServiceTestSuite))
}

func TestAttachmentService_SaveError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAttachmentRepository)
	repo.On("SaveAttachment", ctx, owner, mock.AnythingOfType("domain.Attachment")).Return(assert.AnError).Once()
	workspaces := services.NewWorkspaceService(memory.NewDraftRepository(cache.New(cache.NoExpiration, 0)), memory.NewWorkspaceRepository(time.Hour))
	service := services.NewAttachmentService(repo, workspaces, 1<<10)

	attachment, err := service.Accept(ctx, owner, pdfUpload(domain.SourceSelect, "invoice.pdf"))

	assert.Nil(t, attachment)
	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}
