package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"golang.org/x/crypto/bcrypt"
)

// authService accepts exactly one configured username/password pair.
type authService struct {
	username     string
	passwordHash []byte
	tokens       portssvc.TokenSvcFacade
}

// NewAuthService creates the credential checker. The configured password is
// hashed once here and never kept in memory as plain text afterwards.
func NewAuthService(cfg *config.Config, tokens portssvc.TokenSvcFacade) (portssvc.AuthSvcFacade, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.LoginPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash login password: %w", err)
	}
	return &authService{
		username:     cfg.LoginUsername,
		passwordHash: hash,
		tokens:       tokens,
	}, nil
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !usernameOK || !passwordOK {
		logger.Warn("Rejected login attempt", slog.String("username", username))
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.IssueToken(username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session for %s: %w", username, err)
	}

	logger.Info("Login successful", slog.String("username", username))
	return &domain.Session{LoggedIn: true, Username: username, ExpiresAt: expiresAt}, token, nil
}

func (s *authService) Authenticate(_ context.Context, token string) (*domain.Session, error) {
	session, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if session.Username != s.username {
		return nil, fmt.Errorf("%w: unknown user %q", apperrors.ErrUnauthenticated, session.Username)
	}
	return session, nil
}
