package services_test

import (
	"testing"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/SscSPs/invoice_drafting_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestValidateDraft_SampleIsValid(t *testing.T) {
	assert.Empty(t, services.ValidateDraft(domain.NewSampleDraft()))
}

func TestValidateDraft_BlankDraft(t *testing.T) {
	errs := services.ValidateDraft(domain.NewBlankDraft())

	assert.Equal(t, "Vendor is required", errs["vendor"])
	assert.Equal(t, "Address is required", errs["address"])
	assert.Equal(t, "Invoice Number is required", errs["invoiceNumber"])
	assert.Equal(t, "Invoice Date is required", errs["invoiceDate"])
	assert.Equal(t, "Total Amount is required", errs["totalAmount"])
	assert.Equal(t, "Line Amount is required", errs["expenses[0].lineAmount"])
	assert.Equal(t, "Department is required", errs["expenses[0].department"])
	assert.Equal(t, "Account is required", errs["expenses[0].account"])
	assert.Equal(t, "Location is required", errs["expenses[0].location"])
	assert.Equal(t, "Description is required", errs["expenses[0].description"])
	assert.NotContains(t, errs, "description")
	assert.NotContains(t, errs, "comments")
	assert.Len(t, errs, 10)
}

func TestValidateDraft_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *domain.InvoiceDraft)
		path    string
		message string
	}{
		{"bad date", func(d *domain.InvoiceDraft) { d.InvoiceDate = "14/02/2025" }, "invoiceDate", "Invalid date"},
		{"impossible date", func(d *domain.InvoiceDraft) { d.InvoiceDate = "2025-02-30" }, "invoiceDate", "Invalid date"},
		{"bad total", func(d *domain.InvoiceDraft) { d.TotalAmount = "five hundred" }, "totalAmount", "Invalid amount"},
		{"bad line amount", func(d *domain.InvoiceDraft) { d.Expenses[0].LineAmount = "1,00" }, "expenses[0].lineAmount", "Invalid amount"},
		{"unknown department", func(d *domain.InvoiceDraft) { d.Expenses[0].Department = "Legal" }, "expenses[0].department", "Unknown department"},
		{"unknown account", func(d *domain.InvoiceDraft) { d.Expenses[0].Account = "Account 9" }, "expenses[0].account", "Unknown account"},
		{"unknown location", func(d *domain.InvoiceDraft) { d.Expenses[0].Location = "Moon" }, "expenses[0].location", "Unknown location"},
		{"no expenses", func(d *domain.InvoiceDraft) { d.Expenses = nil }, "expenses", "At least one expense line is required"},
		{"missing vendor", func(d *domain.InvoiceDraft) { d.Vendor = "" }, "vendor", "Vendor is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := domain.NewSampleDraft()
			tt.mutate(&draft)

			errs := services.ValidateDraft(draft)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.path])
		})
	}
}

func TestValidateDraft_MismatchedTotalsAreAccepted(t *testing.T) {
	draft := domain.NewSampleDraft()
	draft.TotalAmount = "500"
	draft.Expenses[0].LineAmount = "100"

	assert.Empty(t, services.ValidateDraft(draft))
}
