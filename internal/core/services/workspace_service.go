package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
)

// workspaceService runs the invoice form actions. All mutations of one
// owner's workspace are serialised.
type workspaceService struct {
	draftRepo     portsrepo.DraftRepositoryFacade
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	now           func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// WorkspaceServiceOption configures a workspace service.
type WorkspaceServiceOption func(*workspaceService)

// WithClock replaces the clock used for notifications.
func WithClock(now func() time.Time) WorkspaceServiceOption {
	return func(s *workspaceService) {
		s.now = now
	}
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(draftRepo portsrepo.DraftRepositoryFacade, workspaceRepo portsrepo.WorkspaceRepositoryFacade, opts ...WorkspaceServiceOption) portssvc.WorkspaceSvcFacade {
	s := &workspaceService{
		draftRepo:     draftRepo,
		workspaceRepo: workspaceRepo,
		now:           time.Now,
		locks:         map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

func (s *workspaceService) lockFor(owner string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[owner]
	if !ok {
		l = &sync.Mutex{}
		s.locks[owner] = l
	}
	return l
}

// LoadDraft returns the stored draft or the blank template.
func (s *workspaceService) LoadDraft(ctx context.Context, owner string) (*domain.InvoiceDraft, error) {
	draft, err := s.draftRepo.FindDraft(ctx, owner)
	switch {
	case err == nil:
		return draft, nil
	case errors.Is(err, apperrors.ErrNotFound):
		blank := domain.NewBlankDraft()
		return &blank, nil
	case errors.Is(err, apperrors.ErrMalformed):
		middleware.GetLoggerFromCtx(ctx).Warn("Stored draft is unreadable, starting from blank template",
			slog.String("owner", owner), slog.String("error", err.Error()))
		blank := domain.NewBlankDraft()
		return &blank, nil
	default:
		return nil, fmt.Errorf("failed to load draft in service: %w", err)
	}
}

// SaveDraft overwrites the stored draft. No validation is done here.
func (s *workspaceService) SaveDraft(ctx context.Context, owner string, draft domain.InvoiceDraft) error {
	if err := s.draftRepo.SaveDraft(ctx, owner, draft.Clone()); err != nil {
		return fmt.Errorf("failed to save draft in service: %w", err)
	}
	return nil
}

func (s *workspaceService) open(ctx context.Context, owner string) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindWorkspace(ctx, owner)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	draft, err := s.LoadDraft(ctx, owner)
	if err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Opened workspace", slog.String("owner", owner), slog.Int("expense_lines", len(draft.Expenses)))
	return domain.NewWorkspace(owner, *draft), nil
}

// mutate applies fn to the owner's workspace and stores the result. The
// workspace is stored even when fn fails, so partial state such as touched
// marks from a rejected submit is kept.
func (s *workspaceService) mutate(ctx context.Context, owner string, fn func(ws *domain.Workspace) error) (*domain.Workspace, error) {
	l := s.lockFor(owner)
	l.Lock()
	defer l.Unlock()

	ws, err := s.open(ctx, owner)
	if err != nil {
		return nil, err
	}

	fnErr := fn(ws)
	if err := s.workspaceRepo.SaveWorkspace(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to store workspace: %w", err)
	}
	if fnErr != nil {
		return ws, fnErr
	}
	return ws, nil
}

func (s *workspaceService) GetWorkspace(ctx context.Context, owner string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(*domain.Workspace) error { return nil })
}

func (s *workspaceService) ValidateWorkspace(ctx context.Context, owner string) (domain.FieldErrors, error) {
	ws, err := s.GetWorkspace(ctx, owner)
	if err != nil {
		return nil, err
	}
	return ValidateDraft(ws.Draft), nil
}

func (s *workspaceService) SwitchTab(ctx context.Context, owner string, tab domain.Tab) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.SwitchTab(tab)
		return nil
	})
}

func (s *workspaceService) EditFields(ctx context.Context, owner string, edits map[string]string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		return ws.ApplyEdits(edits)
	})
}

func (s *workspaceService) SelectVendor(ctx context.Context, owner string, vendorName string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.SelectVendor(vendorName)
		return nil
	})
}

func (s *workspaceService) AddExpenseLine(ctx context.Context, owner string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.AddExpenseLine()
		return nil
	})
}

func (s *workspaceService) RemoveExpenseLine(ctx context.Context, owner string, index int) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		return ws.RemoveExpenseLine(index)
	})
}

func (s *workspaceService) PopulateSampleData(ctx context.Context, owner string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.PopulateSample()
		return nil
	})
}

func (s *workspaceService) SaveAsDraft(ctx context.Context, owner string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		if err := s.SaveDraft(ctx, owner, ws.Draft); err != nil {
			return err
		}
		middleware.GetLoggerFromCtx(ctx).Info("Draft saved", slog.String("owner", owner))
		ws.Notify(domain.MsgDraftSaved, domain.SeveritySuccess, s.now())
		return nil
	})
}

func (s *workspaceService) SubmitAndStartNew(ctx context.Context, owner string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.TouchAll()
		if errs := ValidateDraft(ws.Draft); len(errs) > 0 {
			middleware.GetLoggerFromCtx(ctx).Info("Submit rejected by validation", slog.String("owner", owner), slog.Int("errors", len(errs)))
			return &apperrors.ValidationError{Fields: errs}
		}
		if err := s.SaveDraft(ctx, owner, ws.Draft); err != nil {
			return err
		}
		middleware.GetLoggerFromCtx(ctx).Info("Invoice submitted", slog.String("owner", owner), slog.String("invoice_number", ws.Draft.InvoiceNumber))
		ws.Notify(domain.MsgFormSubmitted, domain.SeveritySuccess, s.now())
		ws.Reset()
		return nil
	})
}

func (s *workspaceService) StartNewInvoice(ctx context.Context, owner string) (*domain.Workspace, error) {
	return s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.Reset()
		ws.Notify(domain.MsgReadyForNew, domain.SeveritySuccess, s.now())
		return nil
	})
}

func (s *workspaceService) SetAttachmentError(ctx context.Context, owner string, message string) error {
	_, err := s.mutate(ctx, owner, func(ws *domain.Workspace) error {
		ws.AttachmentError = message
		return nil
	})
	return err
}

func (s *workspaceService) DiscardWorkspace(ctx context.Context, owner string) error {
	l := s.lockFor(owner)
	l.Lock()
	defer l.Unlock()

	if err := s.workspaceRepo.DeleteWorkspace(ctx, owner); err != nil {
		return fmt.Errorf("failed to discard workspace: %w", err)
	}
	return nil
}
