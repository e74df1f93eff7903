package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseLine is one row of cost-allocation detail attached to an invoice.
type ExpenseLine struct {
	LineAmount  string `json:"lineAmount" validate:"required,decimal"`
	Department  string `json:"department" validate:"required,catalog=department"`
	Account     string `json:"account" validate:"required,catalog=account"`
	Location    string `json:"location" validate:"required,catalog=location"`
	Description string `json:"description" validate:"required"`
}

// InvoiceDraft is the in-progress invoice, stored as a whole on every save.
// All values are kept as entered; parsing only happens during validation.
type InvoiceDraft struct {
	Vendor              string        `json:"vendor" validate:"required"`
	Address             string        `json:"address" validate:"required"`
	InvoiceNumber       string        `json:"invoiceNumber" validate:"required"`
	InvoiceDate         string        `json:"invoiceDate" validate:"required,isodate"`
	TotalAmount         string        `json:"totalAmount" validate:"required,decimal"`
	PaymentTerms        string        `json:"paymentTerms"`
	DueDate             string        `json:"dueDate"`
	GLPostDate          string        `json:"glPostDate"`
	Description         string        `json:"description"`
	Comments            string        `json:"comments"`
	PurchaseOrderNumber string        `json:"purchaseOrderNumber"`
	Expenses            []ExpenseLine `json:"expenses" validate:"min=1,dive"`
}

// Field names of InvoiceDraft and ExpenseLine as they appear in paths.
var (
	draftFieldNames = []string{
		"vendor", "address", "invoiceNumber", "invoiceDate", "totalAmount",
		"paymentTerms", "dueDate", "glPostDate", "description", "comments",
		"purchaseOrderNumber",
	}
	expenseFieldNames = []string{"lineAmount", "department", "account", "location", "description"}
)

// NewBlankDraft returns the empty template: every field blank and exactly one
// blank expense line.
func NewBlankDraft() InvoiceDraft {
	return InvoiceDraft{Expenses: []ExpenseLine{{}}}
}

// NewSampleDraft returns the built-in example used for manual testing.
func NewSampleDraft() InvoiceDraft {
	return InvoiceDraft{
		Vendor:              "A-1 Exterminators",
		Address:             "500 Main St, Lynn",
		InvoiceNumber:       "INV-1234",
		InvoiceDate:         "2025-02-14",
		TotalAmount:         "500",
		PaymentTerms:        "Net 30",
		DueDate:             "2025-03-15",
		GLPostDate:          "2025-02-15",
		Description:         "Test description",
		Comments:            "Some comments",
		PurchaseOrderNumber: "PO-001",
		Expenses: []ExpenseLine{
			{
				LineAmount:  "100",
				Department:  "HR",
				Account:     "Account 1",
				Location:    "Location 1",
				Description: "Expense 1",
			},
		},
	}
}

// Clone returns a deep copy of the draft.
func (d InvoiceDraft) Clone() InvoiceDraft {
	out := d
	if d.Expenses != nil {
		out.Expenses = make([]ExpenseLine, len(d.Expenses))
		copy(out.Expenses, d.Expenses)
	}
	return out
}

// ParseAmount parses a user-entered amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// LineTotal sums the line amounts that parse. Unparseable lines are skipped.
func (d *InvoiceDraft) LineTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range d.Expenses {
		if amount, err := ParseAmount(line.LineAmount); err == nil {
			sum = sum.Add(amount)
		}
	}
	return sum
}

// ExpensePath builds the path of a field within an expense line.
func ExpensePath(index int, field string) string {
	return fmt.Sprintf("expenses[%d].%s", index, field)
}

// FieldPaths lists every editable path of the draft in form order.
func (d *InvoiceDraft) FieldPaths() []string {
	paths := make([]string, 0, len(draftFieldNames)+len(d.Expenses)*len(expenseFieldNames))
	paths = append(paths, draftFieldNames...)
	for i := range d.Expenses {
		for _, f := range expenseFieldNames {
			paths = append(paths, ExpensePath(i, f))
		}
	}
	return paths
}

// HasField reports whether path addresses an existing field of the draft.
func (d *InvoiceDraft) HasField(path string) bool {
	_, ok := d.field(path)
	return ok
}

// Get returns the value stored at path.
func (d *InvoiceDraft) Get(path string) (string, bool) {
	p, ok := d.field(path)
	if !ok {
		return "", false
	}
	return *p, true
}

func (d *InvoiceDraft) field(path string) (*string, bool) {
	if index, name, ok := parseExpensePath(path); ok {
		if index < 0 || index >= len(d.Expenses) {
			return nil, false
		}
		line := &d.Expenses[index]
		switch name {
		case "lineAmount":
			return &line.LineAmount, true
		case "department":
			return &line.Department, true
		case "account":
			return &line.Account, true
		case "location":
			return &line.Location, true
		case "description":
			return &line.Description, true
		}
		return nil, false
	}

	switch path {
	case "vendor":
		return &d.Vendor, true
	case "address":
		return &d.Address, true
	case "invoiceNumber":
		return &d.InvoiceNumber, true
	case "invoiceDate":
		return &d.InvoiceDate, true
	case "totalAmount":
		return &d.TotalAmount, true
	case "paymentTerms":
		return &d.PaymentTerms, true
	case "dueDate":
		return &d.DueDate, true
	case "glPostDate":
		return &d.GLPostDate, true
	case "description":
		return &d.Description, true
	case "comments":
		return &d.Comments, true
	case "purchaseOrderNumber":
		return &d.PurchaseOrderNumber, true
	}
	return nil, false
}

// parseExpensePath splits "expenses[3].account" into (3, "account").
func parseExpensePath(path string) (int, string, bool) {
	rest, ok := strings.CutPrefix(path, "expenses[")
	if !ok {
		return 0, "", false
	}
	idx, name, ok := strings.Cut(rest, "].")
	if !ok || name == "" {
		return 0, "", false
	}
	n, err := strconv.Atoi(idx)
	if err != nil {
		return 0, "", false
	}
	return n, name, true
}
