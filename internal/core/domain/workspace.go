package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
)

// Tab is the visible panel of the workspace. Every panel stays part of the
// same form; the tab only decides which one is shown.
type Tab string

const (
	TabVendorDetails  Tab = "vendor"
	TabInvoiceDetails Tab = "invoice"
	TabComments       Tab = "comments"
)

// Tabs lists the panels in display order.
var Tabs = []Tab{TabVendorDetails, TabInvoiceDetails, TabComments}

// Label is the human readable tab title.
func (t Tab) Label() string {
	switch t {
	case TabInvoiceDetails:
		return "Invoice Details"
	case TabComments:
		return "Comments"
	default:
		return "Vendor Details"
	}
}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tab %q", apperrors.ErrValidation, s)
}

// Notification messages raised by workspace actions.
const (
	MsgDraftSaved    = "Draft saved!"
	MsgFormSubmitted = "Form submitted!"
	MsgReadyForNew   = "Form ready for new entry!"
)

// FieldErrors maps a field path to its validation message.
type FieldErrors map[string]string

// Workspace is the live state of one user's invoice form.
type Workspace struct {
	Owner           string          `json:"owner"`
	Draft           InvoiceDraft    `json:"draft"`
	ActiveTab       Tab             `json:"activeTab"`
	Touched         map[string]bool `json:"touched"`
	Notification    *Notification   `json:"notification,omitempty"`
	AttachmentError string          `json:"attachmentError,omitempty"`
}

// NewWorkspace opens a workspace on the given draft with the first tab shown.
func NewWorkspace(owner string, draft InvoiceDraft) *Workspace {
	return &Workspace{
		Owner:     owner,
		Draft:     draft.Clone(),
		ActiveTab: TabVendorDetails,
		Touched:   map[string]bool{},
	}
}

// Clone returns a deep copy.
func (w *Workspace) Clone() *Workspace {
	out := *w
	out.Draft = w.Draft.Clone()
	out.Touched = make(map[string]bool, len(w.Touched))
	for k, v := range w.Touched {
		out.Touched[k] = v
	}
	if w.Notification != nil {
		n := *w.Notification
		out.Notification = &n
	}
	return &out
}

// SwitchTab changes the visible panel. Form values are not touched.
func (w *Workspace) SwitchTab(t Tab) {
	w.ActiveTab = t
}

// ApplyEdits writes field values. Every path is checked before anything is
// written. Changed fields become touched. A vendor edit behaves like
// SelectVendor and is applied last, so it overrides an address edit made in
// the same batch.
func (w *Workspace) ApplyEdits(edits map[string]string) error {
	for path := range edits {
		if !w.Draft.HasField(path) {
			return fmt.Errorf("%w: unknown field %q", apperrors.ErrValidation, path)
		}
	}
	for path, value := range edits {
		if path == "vendor" {
			continue
		}
		p, _ := w.Draft.field(path)
		if *p != value {
			*p = value
			w.Touched[path] = true
		}
	}
	if vendor, ok := edits["vendor"]; ok && vendor != w.Draft.Vendor {
		w.SelectVendor(vendor)
	}
	return nil
}

// SelectVendor sets the vendor and overwrites the address with the catalog
// address, discarding any manual edit. Unknown vendors clear the address.
func (w *Workspace) SelectVendor(name string) {
	w.Draft.Vendor = name
	w.Draft.Address = ""
	if v, ok := FindVendor(name); ok {
		w.Draft.Address = v.Address
	}
	w.Touched["vendor"] = true
}

// AddExpenseLine appends a blank line.
func (w *Workspace) AddExpenseLine() {
	w.Draft.Expenses = append(w.Draft.Expenses, ExpenseLine{})
}

// RemoveExpenseLine deletes the line at index. Later lines keep their order
// and their touched marks move down with them.
func (w *Workspace) RemoveExpenseLine(index int) error {
	if index < 0 || index >= len(w.Draft.Expenses) {
		return fmt.Errorf("%w: expense line %d does not exist", apperrors.ErrValidation, index)
	}
	w.Draft.Expenses = append(w.Draft.Expenses[:index:index], w.Draft.Expenses[index+1:]...)

	touched := make(map[string]bool, len(w.Touched))
	for path, v := range w.Touched {
		i, name, ok := parseExpensePath(path)
		switch {
		case !ok || i < index:
			touched[path] = v
		case i > index:
			touched[ExpensePath(i-1, name)] = v
		}
	}
	w.Touched = touched
	return nil
}

// PopulateSample replaces every field with the built-in example.
func (w *Workspace) PopulateSample() {
	w.Draft = NewSampleDraft()
}

// Reset returns the form to the blank template and forgets touched fields.
func (w *Workspace) Reset() {
	w.Draft = NewBlankDraft()
	w.Touched = map[string]bool{}
}

// TouchAll marks every field as interacted with, as a submit attempt does.
func (w *Workspace) TouchAll() {
	for _, p := range w.Draft.FieldPaths() {
		w.Touched[p] = true
	}
	w.Touched["expenses"] = true
}

// Notify raises a banner.
func (w *Workspace) Notify(message string, severity Severity, now time.Time) {
	w.Notification = &Notification{Message: message, Severity: severity, RaisedAt: now}
}

// VisibleErrors keeps only errors for touched fields.
func (w *Workspace) VisibleErrors(all FieldErrors) FieldErrors {
	visible := FieldErrors{}
	for path, msg := range all {
		if w.Touched[path] {
			visible[path] = msg
		}
	}
	return visible
}

// TouchedPaths returns touched field paths in sorted order.
func (w *Workspace) TouchedPaths() []string {
	paths := make([]string, 0, len(w.Touched))
	for p, v := range w.Touched {
		if v {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
