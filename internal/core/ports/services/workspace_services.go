package services

import (
	"context"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// DraftSvc defines the invoice draft store.
type DraftSvc interface {
	// LoadDraft returns the stored draft, or the blank template when none is
	// stored or the stored one is unreadable.
	LoadDraft(ctx context.Context, owner string) (*domain.InvoiceDraft, error)
	SaveDraft(ctx context.Context, owner string, draft domain.InvoiceDraft) error
}

// WorkspaceReaderSvc defines read operations on the live form.
type WorkspaceReaderSvc interface {
	// GetWorkspace returns the open workspace, opening one from the stored
	// draft if needed.
	GetWorkspace(ctx context.Context, owner string) (*domain.Workspace, error)
	// ValidateWorkspace returns every validation error of the current draft,
	// touched or not.
	ValidateWorkspace(ctx context.Context, owner string) (domain.FieldErrors, error)
}

// WorkspaceWriterSvc defines the form actions.
type WorkspaceWriterSvc interface {
	SwitchTab(ctx context.Context, owner string, tab domain.Tab) (*domain.Workspace, error)
	EditFields(ctx context.Context, owner string, edits map[string]string) (*domain.Workspace, error)
	SelectVendor(ctx context.Context, owner string, vendorName string) (*domain.Workspace, error)
	AddExpenseLine(ctx context.Context, owner string) (*domain.Workspace, error)
	RemoveExpenseLine(ctx context.Context, owner string, index int) (*domain.Workspace, error)
	PopulateSampleData(ctx context.Context, owner string) (*domain.Workspace, error)
	SaveAsDraft(ctx context.Context, owner string) (*domain.Workspace, error)
	// SubmitAndStartNew validates with every field touched; on success it
	// saves the draft and resets the form. Validation failures return an
	// *apperrors.ValidationError together with the updated workspace.
	SubmitAndStartNew(ctx context.Context, owner string) (*domain.Workspace, error)
	StartNewInvoice(ctx context.Context, owner string) (*domain.Workspace, error)
	SetAttachmentError(ctx context.Context, owner string, message string) error
	// DiscardWorkspace drops the live form; the stored draft is kept.
	DiscardWorkspace(ctx context.Context, owner string) error
}

// WorkspaceSvcFacade combines all workspace-related service interfaces.
type WorkspaceSvcFacade interface {
	DraftSvc
	WorkspaceReaderSvc
	WorkspaceWriterSvc
}
