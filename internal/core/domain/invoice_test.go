package domain_test

import (
	"testing"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewBlankDraft(t *testing.T) {
	d := domain.NewBlankDraft()

	assert.Len(t, d.Expenses, 1)
	assert.Equal(t, domain.ExpenseLine{}, d.Expenses[0])
	assert.Empty(t, d.Vendor)
	assert.Empty(t, d.TotalAmount)
}

func TestInvoiceDraft_FieldAccess(t *testing.T) {
	d := domain.NewSampleDraft()

	tests := []struct {
		path  string
		want  string
		found bool
	}{
		{path: "vendor", want: "A-1 Exterminators", found: true},
		{path: "glPostDate", want: "2025-02-15", found: true},
		{path: "expenses[0].department", want: "HR", found: true},
		{path: "expenses[0].description", want: "Expense 1", found: true},
		{path: "expenses[1].department", found: false},
		{path: "expenses[x].department", found: false},
		{path: "expenses[0].nope", found: false},
		{path: "unknown", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := d.Get(tt.path)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoiceDraft_FieldPaths(t *testing.T) {
	d := domain.NewBlankDraft()
	d.Expenses = append(d.Expenses, domain.ExpenseLine{})

	paths := d.FieldPaths()

	assert.Len(t, paths, 11+2*5)
	assert.Contains(t, paths, "purchaseOrderNumber")
	assert.Contains(t, paths, "expenses[1].location")
	for _, p := range paths {
		assert.True(t, d.HasField(p), p)
	}
}

func TestCatalog(t *testing.T) {
	v, ok := domain.FindVendor("A-1 Exterminators")
	assert.True(t, ok)
	assert.Equal(t, "500 Main St, Lynn", v.Address)

	assert.True(t, domain.CatalogContains(domain.CatalogDepartment, "Finance"))
	assert.False(t, domain.CatalogContains(domain.CatalogDepartment, "Legal"))

	values, ok := domain.CatalogValues(domain.CatalogPurchaseOrder)
	assert.True(t, ok)
	assert.Equal(t, []string{"PO-001", "PO-002", "PO-003"}, values)
}

func TestParseAmountAndLineTotal(t *testing.T) {
	amount, err := domain.ParseAmount(" 12.50 ")
	assert.NoError(t, err)
	assert.Equal(t, "12.5", amount.String())

	_, err = domain.ParseAmount("")
	assert.Error(t, err)

	d := domain.NewSampleDraft()
	d.Expenses = append(d.Expenses,
		domain.ExpenseLine{LineAmount: "250.25"},
		domain.ExpenseLine{LineAmount: "n/a"},
	)
	assert.Equal(t, "350.25", d.LineTotal().String())
}
