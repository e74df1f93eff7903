package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafting_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workspaceHandler handles HTTP requests that drive the invoice form.
type workspaceHandler struct {
	workspaceService  portssvc.WorkspaceSvcFacade
	attachmentService portssvc.AttachmentSvcFacade
	now               func() time.Time
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade, as portssvc.AttachmentSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService:  ws,
		attachmentService: as,
		now:               time.Now,
	}
}

// registerWorkspaceRoutes registers routes related to the invoice workspace.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade, attachmentService portssvc.AttachmentSvcFacade) {
	h := newWorkspaceHandler(workspaceService, attachmentService)

	ws := rg.Group("/workspace")
	{
		ws.GET("", h.getWorkspace)
		ws.GET("/validation", h.validate)
		ws.PATCH("/fields", h.editFields)
		ws.PUT("/tab", h.switchTab)
		ws.PUT("/vendor", h.selectVendor)
		ws.POST("/expenses", h.addExpenseLine)
		ws.DELETE("/expenses/:index", h.removeExpenseLine)
		ws.POST("/sample", h.populateSample)
		ws.POST("/draft", h.saveDraft)
		ws.POST("/submit", h.submit)
		ws.POST("/new", h.startNew)
	}
}

// buildWorkspaceResponse renders ws together with its validation errors and attachment.
func buildWorkspaceResponse(ctx context.Context, workspaces portssvc.WorkspaceReaderSvc, attachments portssvc.AttachmentSvcFacade, ws *domain.Workspace, now time.Time) (dto.WorkspaceResponse, error) {
	allErrors, err := workspaces.ValidateWorkspace(ctx, ws.Owner)
	if err != nil {
		return dto.WorkspaceResponse{}, err
	}
	attachment, err := attachments.GetAttachment(ctx, ws.Owner)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return dto.WorkspaceResponse{}, err
		}
		attachment = nil
	}
	return dto.ToWorkspaceResponse(ws, allErrors, attachment, now), nil
}

// run executes a workspace action for the current user and writes the resulting state.
func (h *workspaceHandler) run(c *gin.Context, name string, action func(ctx context.Context, owner string) (*domain.Workspace, error)) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Workspace action", slog.String("action", name))

	ws, err := action(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to %s", name))
		return
	}

	res, err := buildWorkspaceResponse(c.Request.Context(), h.workspaceService, h.attachmentService, ws, h.now())
	if err != nil {
		respondError(c, err, "Failed to load workspace")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getWorkspace godoc
// @Summary Get the invoice form
// @Description Returns the live form, opening it from the saved draft if needed.
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /workspace [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	h.run(c, "load workspace", h.workspaceService.GetWorkspace)
}

// validate godoc
// @Summary Validate the invoice form
// @Description Lists every validation error of the current form, touched or not.
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.ValidationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /workspace/validation [get]
func (h *workspaceHandler) validate(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}
	errs, err := h.workspaceService.ValidateWorkspace(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err, "Failed to validate workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ValidationResponse{Valid: len(errs) == 0, Fields: errs})
}

// editFields godoc
// @Summary Edit form fields
// @Description Sets field values by path. Changed fields become touched. Unknown paths reject the whole request.
// @Tags workspace
// @Accept json
// @Produce json
// @Param fields body dto.EditFieldsRequest true "Field values by path"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /workspace/fields [patch]
func (h *workspaceHandler) editFields(c *gin.Context) {
	var req dto.EditFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	h.run(c, "edit fields", func(ctx context.Context, owner string) (*domain.Workspace, error) {
		return h.workspaceService.EditFields(ctx, owner, req.Fields)
	})
}

// switchTab godoc
// @Summary Switch tab
// @Tags workspace
// @Accept json
// @Produce json
// @Param tab body dto.SwitchTabRequest true "Tab name"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /workspace/tab [put]
func (h *workspaceHandler) switchTab(c *gin.Context) {
	var req dto.SwitchTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	tab, err := domain.ParseTab(req.Tab)
	if err != nil {
		respondError(c, err, "Failed to switch tab")
		return
	}
	h.run(c, "switch tab", func(ctx context.Context, owner string) (*domain.Workspace, error) {
		return h.workspaceService.SwitchTab(ctx, owner, tab)
	})
}

// selectVendor godoc
// @Summary Select vendor
// @Description Sets the vendor and replaces the address with the vendor's catalog address.
// @Tags workspace
// @Accept json
// @Produce json
// @Param vendor body dto.SelectVendorRequest true "Vendor name"
// @Success 200 {object} dto.WorkspaceResponse
// @Security BearerAuth
// @Router /workspace/vendor [put]
func (h *workspaceHandler) selectVendor(c *gin.Context) {
	var req dto.SelectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	h.run(c, "select vendor", func(ctx context.Context, owner string) (*domain.Workspace, error) {
		return h.workspaceService.SelectVendor(ctx, owner, req.Vendor)
	})
}

// addExpenseLine godoc
// @Summary Add expense line
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Security BearerAuth
// @Router /workspace/expenses [post]
func (h *workspaceHandler) addExpenseLine(c *gin.Context) {
	h.run(c, "add expense line", h.workspaceService.AddExpenseLine)
}

// removeExpenseLine godoc
// @Summary Remove expense line
// @Tags workspace
// @Produce json
// @Param index path int true "Line index"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /workspace/expenses/{index} [delete]
func (h *workspaceHandler) removeExpenseLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid expense line index"})
		return
	}
	h.run(c, "remove expense line", func(ctx context.Context, owner string) (*domain.Workspace, error) {
		return h.workspaceService.RemoveExpenseLine(ctx, owner, index)
	})
}

// populateSample godoc
// @Summary Fill in sample data
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Security BearerAuth
// @Router /workspace/sample [post]
func (h *workspaceHandler) populateSample(c *gin.Context) {
	h.run(c, "populate sample data", h.workspaceService.PopulateSampleData)
}

// saveDraft godoc
// @Summary Save as draft
// @Description Stores the form as it is, valid or not.
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /workspace/draft [post]
func (h *workspaceHandler) saveDraft(c *gin.Context) {
	h.run(c, "save draft", h.workspaceService.SaveAsDraft)
}

// submit godoc
// @Summary Submit and start new
// @Description Validates the whole form. Valid forms are stored and the form is reset.
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /workspace/submit [post]
func (h *workspaceHandler) submit(c *gin.Context) {
	h.run(c, "submit invoice", h.workspaceService.SubmitAndStartNew)
}

// startNew godoc
// @Summary Start a new invoice
// @Description Clears the form without saving it. The stored draft is kept.
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Security BearerAuth
// @Router /workspace/new [post]
func (h *workspaceHandler) startNew(c *gin.Context) {
	h.run(c, "start new invoice", h.workspaceService.StartNewInvoice)
}
