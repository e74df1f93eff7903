package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/SscSPs/invoice_drafting_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWorkspaceResponse(t *testing.T) {
	now := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	ws := domain.NewWorkspace("user", domain.NewSampleDraft())
	ws.SwitchTab(domain.TabComments)
	ws.Touched["invoiceNumber"] = true
	ws.Notify(domain.MsgDraftSaved, domain.SeveritySuccess, now.Add(-2*time.Second))
	errs := domain.FieldErrors{"invoiceNumber": "Invoice Number is required", "vendor": "Vendor is required"}
	attachment := &domain.Attachment{FileName: "invoice.pdf", ContentType: domain.PDFContentType, AttachedAt: now}

	res := dto.ToWorkspaceResponse(ws, errs, attachment, now)

	assert.Equal(t, domain.TabComments, res.ActiveTab)
	require.Len(t, res.Tabs, 3)
	assert.True(t, res.Tabs[2].Active)
	assert.Equal(t, "Invoice Details", res.Tabs[1].Label)
	assert.Equal(t, map[string]string{"invoiceNumber": "Invoice Number is required"}, res.Errors)
	require.NotNil(t, res.Notification)
	assert.Equal(t, now.Add(4*time.Second), res.Notification.ExpiresAt)
	assert.Equal(t, domain.AttachmentAttached, res.Attachment.State)
	assert.Equal(t, "invoice.pdf", res.Attachment.FileName)

	assert.Equal(t, "100.00", res.Summary.LinesTotal)
	assert.Equal(t, "500.00", res.Summary.TotalAmount)
	assert.Equal(t, "400.00", res.Summary.Difference)
	assert.False(t, res.Summary.Balanced)
}

func TestToWorkspaceResponse_EmptyAndExpired(t *testing.T) {
	now := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())
	ws.Notify(domain.MsgFormSubmitted, domain.SeveritySuccess, now.Add(-domain.NotificationLifetime))
	ws.AttachmentError = "Please drop a valid PDF file"

	res := dto.ToWorkspaceResponse(ws, domain.FieldErrors{"vendor": "Vendor is required"}, nil, now)

	assert.Nil(t, res.Notification)
	assert.Empty(t, res.Errors)
	assert.Equal(t, domain.AttachmentEmpty, res.Attachment.State)
	assert.Equal(t, "Please drop a valid PDF file", res.Attachment.Error)
	assert.Equal(t, "0.00", res.Summary.LinesTotal)
	assert.Empty(t, res.Summary.TotalAmount)
	assert.False(t, res.Summary.Balanced)
}
