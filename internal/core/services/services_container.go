package services

import (
	portsrepo "github.com/SscSPs/invoice_drafting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)

	auth, err := NewAuthService(cfg, container.Token)
	if err != nil {
		return nil, err
	}
	container.Auth = auth

	// Workspace first: the attachment service reports inline errors through it.
	container.Workspace = NewWorkspaceService(repos.DraftRepo, repos.WorkspaceRepo)
	container.Attachment = NewAttachmentService(repos.AttachmentRepo, container.Workspace, cfg.MaxAttachmentBytes)

	return container, nil
}
