package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to an HTTP status and JSON body.
// failure is the message used for unexpected errors.
func respondError(c *gin.Context, err error, failure string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Info("Request rejected by validation", slog.Int("fields", len(validationErr.Fields)))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "Validation failed", Fields: validationErr.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrAttachmentTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: inlineMessage(err, apperrors.ErrAttachmentTooLarge)})
	case errors.Is(err, apperrors.ErrUnsupportedType):
		c.JSON(http.StatusUnsupportedMediaType, dto.ErrorResponse{Error: inlineMessage(err, apperrors.ErrUnsupportedType)})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: failure})
	}
}

// inlineMessage strips the sentinel prefix from "kind: message" errors.
func inlineMessage(err error, kind error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, kind.Error()+": "); i >= 0 {
		return msg[i+len(kind.Error())+2:]
	}
	return msg
}

// ownerFromContext returns the username that owns the draft of this request.
func ownerFromContext(c *gin.Context) (string, bool) {
	owner, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Username not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})
		return "", false
	}
	return owner, true
}
