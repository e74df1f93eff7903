package services_test

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockDraftRepository is a mock type for the DraftRepositoryFacade interface
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) FindDraft(ctx context.Context, owner string) (*domain.InvoiceDraft, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDraft), args.Error(1)
}

func (m *MockDraftRepository) SaveDraft(ctx context.Context, owner string, draft domain.InvoiceDraft) error {
	args := m.Called(ctx, owner, draft)
	return args.Error(0)
}

// MockAttachmentRepository is a mock type for the AttachmentRepositoryFacade interface
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindAttachment(ctx context.Context, owner string) (*domain.Attachment, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) SaveAttachment(ctx context.Context, owner string, attachment domain.Attachment) error {
	args := m.Called(ctx, owner, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteAttachment(ctx context.Context, owner string) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}
