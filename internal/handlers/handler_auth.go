package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// sessionIssuer starts and ends browser sessions for the pages and the API.
type sessionIssuer struct {
	cfg        *config.Config
	auth       portssvc.AuthSvcFacade
	workspaces portssvc.WorkspaceWriterSvc
}

func newSessionIssuer(cfg *config.Config, auth portssvc.AuthSvcFacade, workspaces portssvc.WorkspaceWriterSvc) *sessionIssuer {
	return &sessionIssuer{cfg: cfg, auth: auth, workspaces: workspaces}
}

// login checks the credentials and sets the session cookie. Any live form
// left from an earlier session is dropped so the stored draft is reloaded.
func (s *sessionIssuer) login(c *gin.Context, username, password string) (*domain.Session, string, error) {
	ctx := c.Request.Context()
	session, token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	s.discardWorkspace(ctx, session.Username)
	s.setSessionCookie(c, token, session.ExpiresAt)
	return session, token, nil
}

// logout clears the session cookie. The stored draft is kept.
func (s *sessionIssuer) logout(c *gin.Context) {
	if username, ok := middleware.GetUsernameFromContext(c); ok {
		s.discardWorkspace(c.Request.Context(), username)
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged out", slog.String("username", username))
	}
	s.clearSessionCookie(c)
}

func (s *sessionIssuer) discardWorkspace(ctx context.Context, owner string) {
	if err := s.workspaces.DiscardWorkspace(ctx, owner); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to discard workspace", slog.String("owner", owner), slog.String("error", err.Error()))
	}
}

func (s *sessionIssuer) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.SessionCookieName, token, int(time.Until(expiresAt).Seconds()), "/", "", s.cfg.IsProduction, true)
}

func (s *sessionIssuer) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.SessionCookieName, "", -1, "/", "", s.cfg.IsProduction, true)
}

// authHandler handles the JSON authentication endpoints.
type authHandler struct {
	sessions *sessionIssuer
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, sessions *sessionIssuer, loginLimiter *limiter.Limiter) {
	h := &authHandler{sessions: sessions}

	auth := rg.Group("/auth")
	{
		auth.POST("/login", limitergin.NewMiddleware(loginLimiter), h.login) // Apply rate limiting middleware here
		auth.POST("/logout", h.logout)
	}
	rg.GET("/session", h.session)
}

// login godoc
// @Summary Log in
// @Description Checks the credentials, sets the session cookie and returns the session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, token, err := h.sessions.login(c, req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Username: session.Username, ExpiresAt: session.ExpiresAt})
}

// logout godoc
// @Summary Log out
// @Description Clears the session cookie. The saved draft is kept.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	h.sessions.logout(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// session godoc
// @Summary Session status
// @Description Reports whether the caller is logged in. Never fails.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *authHandler) session(c *gin.Context) {
	session, _ := middleware.GetSessionFromContext(c)
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
