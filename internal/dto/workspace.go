package dto

import (
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
)

// EditFieldsRequest sets field values by path, e.g. {"expenses[0].account": "Account 2"}.
type EditFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// SwitchTabRequest selects the visible panel.
type SwitchTabRequest struct {
	Tab string `json:"tab" binding:"required,oneof=vendor invoice comments"`
}

// SelectVendorRequest picks a vendor from the catalog.
type SelectVendorRequest struct {
	Vendor string `json:"vendor"`
}

// TabResponse describes one panel of the form.
type TabResponse struct {
	Name   domain.Tab `json:"name"`
	Label  string     `json:"label"`
	Active bool       `json:"active"`
}

// NotificationResponse is a banner that is still visible.
type NotificationResponse struct {
	Message   string          `json:"message"`
	Severity  domain.Severity `json:"severity"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// AttachmentResponse describes the attachment slot.
type AttachmentResponse struct {
	State      domain.AttachmentState `json:"state"`
	FileName   string                 `json:"fileName,omitempty"`
	AttachedAt *time.Time             `json:"attachedAt,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// SummaryResponse compares the expense lines with the invoice total. It is
// informational; mismatches are not validation errors.
type SummaryResponse struct {
	LineCount   int    `json:"lineCount"`
	LinesTotal  string `json:"linesTotal"`
	TotalAmount string `json:"totalAmount,omitempty"`
	Difference  string `json:"difference,omitempty"`
	Balanced    bool   `json:"balanced"`
}

// WorkspaceResponse is the full state of the invoice form as the user sees it.
type WorkspaceResponse struct {
	Draft        domain.InvoiceDraft   `json:"draft"`
	ActiveTab    domain.Tab            `json:"activeTab"`
	Tabs         []TabResponse         `json:"tabs"`
	Errors       map[string]string     `json:"errors"`
	Touched      []string              `json:"touched"`
	Notification *NotificationResponse `json:"notification,omitempty"`
	Attachment   AttachmentResponse    `json:"attachment"`
	Summary      SummaryResponse       `json:"summary"`
}

// ValidationResponse lists every current validation error, touched or not.
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields"`
}

// ToWorkspaceResponse builds the response for ws. allErrors is the full
// validation result; only touched fields are reported. attachment may be nil.
func ToWorkspaceResponse(ws *domain.Workspace, allErrors domain.FieldErrors, attachment *domain.Attachment, now time.Time) WorkspaceResponse {
	res := WorkspaceResponse{
		Draft:     ws.Draft.Clone(),
		ActiveTab: ws.ActiveTab,
		Errors:    ws.VisibleErrors(allErrors),
		Touched:   ws.TouchedPaths(),
		Attachment: AttachmentResponse{
			State: domain.AttachmentEmpty,
			Error: ws.AttachmentError,
		},
		Summary: toSummary(&ws.Draft),
	}

	for _, t := range domain.Tabs {
		res.Tabs = append(res.Tabs, TabResponse{Name: t, Label: t.Label(), Active: t == ws.ActiveTab})
	}

	if ws.Notification.Active(now) {
		res.Notification = &NotificationResponse{
			Message:   ws.Notification.Message,
			Severity:  ws.Notification.Severity,
			ExpiresAt: ws.Notification.RaisedAt.Add(domain.NotificationLifetime),
		}
	}

	if attachment != nil {
		attachedAt := attachment.AttachedAt
		res.Attachment.State = domain.AttachmentAttached
		res.Attachment.FileName = attachment.FileName
		res.Attachment.AttachedAt = &attachedAt
	}
	return res
}

func toSummary(draft *domain.InvoiceDraft) SummaryResponse {
	lines := draft.LineTotal()
	summary := SummaryResponse{
		LineCount:  len(draft.Expenses),
		LinesTotal: lines.StringFixed(2),
	}
	if total, err := domain.ParseAmount(draft.TotalAmount); err == nil {
		summary.TotalAmount = total.StringFixed(2)
		summary.Difference = total.Sub(lines).StringFixed(2)
		summary.Balanced = total.Equal(lines)
	}
	return summary
}
