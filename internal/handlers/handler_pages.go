package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

const (
	loginPath   = "/login"
	invoicePath = "/invoice"

	msgInvalidCredentials = "Invalid credentials"
	msgTooManyAttempts    = "Too many login attempts. Please try again later."
)

type loginView struct {
	Username string
	Alert    string
}

type invoiceView struct {
	Username  string
	Workspace dto.WorkspaceResponse
	Catalog   dto.CatalogResponse
}

// pageHandler serves the server-rendered login and invoice pages.
type pageHandler struct {
	sessions          *sessionIssuer
	workspaceService  portssvc.WorkspaceSvcFacade
	attachmentService portssvc.AttachmentSvcFacade
	maxBytes          int64
	now               func() time.Time
}

func registerPageRoutes(r *gin.Engine, cfg *config.Config, sessions *sessionIssuer, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := &pageHandler{
		sessions:          sessions,
		workspaceService:  services.Workspace,
		attachmentService: services.Attachment,
		maxBytes:          cfg.MaxAttachmentBytes,
		now:               time.Now,
	}

	r.GET("/", h.root)
	r.GET(loginPath, h.loginPage)
	r.POST(loginPath, middleware.RateLimit(loginLimiter, h.loginRateLimited), h.login)
	r.POST("/logout", h.logout)

	invoice := r.Group(invoicePath, middleware.RequirePageSession(loginPath))
	{
		invoice.GET("", h.invoicePage)
		invoice.POST("", h.invoiceAction)
		invoice.GET("/attachment", h.attachmentFile)
		invoice.POST("/attachment", h.uploadAttachment)
		invoice.POST("/attachment/remove", h.removeAttachment)
	}
}

func (h *pageHandler) root(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, invoicePath)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

func (h *pageHandler) loginPage(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, invoicePath)
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", loginView{})
}

func (h *pageHandler) login(c *gin.Context) {
	username := c.PostForm("username")
	_, _, err := h.sessions.login(c, username, c.PostForm("password"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.tmpl", loginView{Username: username, Alert: msgInvalidCredentials})
			return
		}
		h.fail(c, err, "Failed to log in")
		return
	}
	// 303 so the browser replaces the POST and "back" skips the login form.
	c.Redirect(http.StatusSeeOther, invoicePath)
}

func (h *pageHandler) loginRateLimited(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "login.tmpl", loginView{Alert: msgTooManyAttempts})
}

func (h *pageHandler) logout(c *gin.Context) {
	h.sessions.logout(c)
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *pageHandler) invoicePage(c *gin.Context) {
	ctx := c.Request.Context()
	owner, _ := middleware.GetUsernameFromContext(c)

	var (
		ws  *domain.Workspace
		err error
	)
	if name := c.Query("tab"); name != "" {
		tab, perr := domain.ParseTab(name)
		if perr != nil {
			c.String(http.StatusBadRequest, "Unknown tab")
			return
		}
		ws, err = h.workspaceService.SwitchTab(ctx, owner, tab)
	} else {
		ws, err = h.workspaceService.GetWorkspace(ctx, owner)
	}
	if err != nil {
		h.fail(c, err, "Failed to load workspace")
		return
	}

	res, err := buildWorkspaceResponse(ctx, h.workspaceService, h.attachmentService, ws, h.now())
	if err != nil {
		h.fail(c, err, "Failed to load workspace")
		return
	}
	c.HTML(http.StatusOK, "invoice.tmpl", invoiceView{Username: owner, Workspace: res, Catalog: dto.NewCatalogResponse()})
}

// invoiceAction applies the posted field values, then the button's action,
// and redirects back to the form.
func (h *pageHandler) invoiceAction(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	owner, _ := middleware.GetUsernameFromContext(c)

	ws, err := h.workspaceService.GetWorkspace(ctx, owner)
	if err != nil {
		h.fail(c, err, "Failed to load workspace")
		return
	}

	edits := map[string]string{}
	for _, path := range ws.Draft.FieldPaths() {
		if value, ok := c.GetPostForm(path); ok {
			edits[path] = value
		}
	}
	if len(edits) > 0 {
		if _, err := h.workspaceService.EditFields(ctx, owner, edits); err != nil {
			h.fail(c, err, "Failed to apply edits")
			return
		}
	}

	action := c.PostForm("action")
	logger.Info("Invoice form action", slog.String("action", action), slog.Int("edits", len(edits)))

	err = h.runAction(ctx, owner, action, c.PostForm("vendor"))
	var validationErr *apperrors.ValidationError
	switch {
	case err == nil, errors.As(err, &validationErr):
		// Field errors are shown on the form, which now has every field touched.
		c.Redirect(http.StatusSeeOther, invoicePath)
	case errors.Is(err, apperrors.ErrValidation):
		c.String(http.StatusBadRequest, err.Error())
	default:
		h.fail(c, err, "Failed to "+action)
	}
}

func (h *pageHandler) runAction(ctx context.Context, owner, action, vendor string) error {
	var err error
	switch {
	case action == "":
	case action == "save-draft":
		_, err = h.workspaceService.SaveAsDraft(ctx, owner)
	case action == "submit":
		_, err = h.workspaceService.SubmitAndStartNew(ctx, owner)
	case action == "new":
		_, err = h.workspaceService.StartNewInvoice(ctx, owner)
	case action == "add-line":
		_, err = h.workspaceService.AddExpenseLine(ctx, owner)
	case action == "sample":
		_, err = h.workspaceService.PopulateSampleData(ctx, owner)
	case action == "select-vendor":
		_, err = h.workspaceService.SelectVendor(ctx, owner, vendor)
	case strings.HasPrefix(action, "remove-line:"):
		index, convErr := strconv.Atoi(strings.TrimPrefix(action, "remove-line:"))
		if convErr != nil {
			return fmt.Errorf("%w: invalid expense line %q", apperrors.ErrValidation, action)
		}
		_, err = h.workspaceService.RemoveExpenseLine(ctx, owner, index)
	case strings.HasPrefix(action, "tab:"):
		tab, parseErr := domain.ParseTab(strings.TrimPrefix(action, "tab:"))
		if parseErr != nil {
			return parseErr
		}
		_, err = h.workspaceService.SwitchTab(ctx, owner, tab)
	default:
		return fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, action)
	}
	return err
}

func (h *pageHandler) uploadAttachment(c *gin.Context) {
	owner, _ := middleware.GetUsernameFromContext(c)
	_, err := acceptUpload(c, owner, h.attachmentService, h.workspaceService, h.maxBytes)
	// Rejections are shown inline on the form.
	if err != nil && !errors.Is(err, apperrors.ErrUnsupportedType) && !errors.Is(err, apperrors.ErrAttachmentTooLarge) {
		if errors.Is(err, apperrors.ErrValidation) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		h.fail(c, err, "Failed to store attachment")
		return
	}
	c.Redirect(http.StatusSeeOther, invoicePath)
}

func (h *pageHandler) removeAttachment(c *gin.Context) {
	owner, _ := middleware.GetUsernameFromContext(c)
	if err := h.attachmentService.Remove(c.Request.Context(), owner); err != nil {
		h.fail(c, err, "Failed to remove attachment")
		return
	}
	c.Redirect(http.StatusSeeOther, invoicePath)
}

func (h *pageHandler) attachmentFile(c *gin.Context) {
	owner, _ := middleware.GetUsernameFromContext(c)
	serveAttachment(c, h.attachmentService, owner, h.fail)
}

// fail writes a plain-text error page.
func (h *pageHandler) fail(c *gin.Context, err error, failure string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Error(failure, slog.String("error", err.Error()))
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}
