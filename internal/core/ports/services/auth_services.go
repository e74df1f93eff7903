package services

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// TokenSvcFacade issues and verifies the signed session token kept in the cookie.
type TokenSvcFacade interface {
	IssueToken(username string) (token string, expiresAt time.Time, err error)
	ParseToken(token string) (*domain.Session, error)
}

// AuthSvcFacade checks credentials and resolves sessions.
type AuthSvcFacade interface {
	// Login returns the new session and its token, or apperrors.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.Session, string, error)
	// Authenticate resolves a session token, or returns apperrors.ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}
