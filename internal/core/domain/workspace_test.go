package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace_SelectVendorOverwritesAddress(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())

	ws.SelectVendor("Vendor 2")
	assert.Equal(t, "123 Some St, City", ws.Draft.Address)

	require.NoError(t, ws.ApplyEdits(map[string]string{"address": "manual edit"}))
	assert.Equal(t, "manual edit", ws.Draft.Address)

	ws.SelectVendor("Vendor 2")
	assert.Equal(t, "123 Some St, City", ws.Draft.Address, "selecting again should discard the manual edit")

	ws.SelectVendor("Vendor 2")
	assert.Equal(t, "Vendor 2", ws.Draft.Vendor)
	assert.Equal(t, "123 Some St, City", ws.Draft.Address)
}

func TestWorkspace_SelectUnknownVendorClearsAddress(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewSampleDraft())

	ws.SelectVendor("Nobody")

	assert.Equal(t, "Nobody", ws.Draft.Vendor)
	assert.Empty(t, ws.Draft.Address)
}

func TestWorkspace_VendorEditBeatsAddressEditInSameBatch(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())

	err := ws.ApplyEdits(map[string]string{"vendor": "Vendor 3", "address": "typed"})

	require.NoError(t, err)
	assert.Equal(t, "456 Another Rd, Town", ws.Draft.Address)
}

func TestWorkspace_AddThenRemoveRestoresLines(t *testing.T) {
	starts := map[string][]domain.ExpenseLine{
		"single blank": {{}},
		"empty":        {},
		"several": {
			{LineAmount: "1", Department: "HR"},
			{LineAmount: "2", Department: "IT"},
			{LineAmount: "3", Department: "Sales", Description: "third"},
		},
	}

	for name, lines := range starts {
		t.Run(name, func(t *testing.T) {
			draft := domain.NewBlankDraft()
			draft.Expenses = lines
			ws := domain.NewWorkspace("user", draft)
			before := ws.Draft.Clone().Expenses

			ws.AddExpenseLine()
			require.Len(t, ws.Draft.Expenses, len(before)+1)
			assert.Equal(t, domain.ExpenseLine{}, ws.Draft.Expenses[len(before)])

			require.NoError(t, ws.RemoveExpenseLine(len(before)))
			assert.ElementsMatch(t, before, ws.Draft.Expenses)
			for i := range before {
				assert.Equal(t, before[i], ws.Draft.Expenses[i])
			}
		})
	}
}

func TestWorkspace_RemoveExpenseLineKeepsOrderAndShiftsTouched(t *testing.T) {
	draft := domain.NewBlankDraft()
	draft.Expenses = []domain.ExpenseLine{{Description: "a"}, {Description: "b"}, {Description: "c"}}
	ws := domain.NewWorkspace("user", draft)
	require.NoError(t, ws.ApplyEdits(map[string]string{
		"expenses[0].lineAmount": "1",
		"expenses[1].lineAmount": "2",
		"expenses[2].lineAmount": "3",
	}))

	require.NoError(t, ws.RemoveExpenseLine(1))

	require.Len(t, ws.Draft.Expenses, 2)
	assert.Equal(t, "a", ws.Draft.Expenses[0].Description)
	assert.Equal(t, "c", ws.Draft.Expenses[1].Description)
	assert.Equal(t, []string{"expenses[0].lineAmount", "expenses[1].lineAmount"}, ws.TouchedPaths())
}

func TestWorkspace_RemoveExpenseLineOutOfRange(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())

	err := ws.RemoveExpenseLine(3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	err = ws.RemoveExpenseLine(-1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Len(t, ws.Draft.Expenses, 1)
}

func TestWorkspace_ApplyEditsRejectsUnknownPathAtomically(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())

	err := ws.ApplyEdits(map[string]string{
		"invoiceNumber":          "INV-1",
		"expenses[5].lineAmount": "10",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, ws.Draft.InvoiceNumber)
	assert.Empty(t, ws.TouchedPaths())
}

func TestWorkspace_SwitchTabKeepsValues(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewSampleDraft())
	before := ws.Draft.Clone()

	for _, tab := range domain.Tabs {
		ws.SwitchTab(tab)
		assert.Equal(t, tab, ws.ActiveTab)
		assert.Equal(t, before, ws.Draft)
	}
}

func TestParseTab(t *testing.T) {
	tab, err := domain.ParseTab("comments")
	require.NoError(t, err)
	assert.Equal(t, domain.TabComments, tab)

	_, err = domain.ParseTab("summary")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestWorkspace_ResetAndVisibleErrors(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewSampleDraft())
	ws.TouchAll()
	all := domain.FieldErrors{"vendor": "Vendor is required", "comments": "x"}
	assert.Equal(t, all, ws.VisibleErrors(all))

	ws.Reset()

	assert.Equal(t, domain.NewBlankDraft(), ws.Draft)
	assert.Empty(t, ws.VisibleErrors(all))
}

func TestNotification_Active(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	ws := domain.NewWorkspace("user", domain.NewBlankDraft())
	ws.Notify(domain.MsgDraftSaved, domain.SeveritySuccess, now)

	assert.True(t, ws.Notification.Active(now.Add(5*time.Second)))
	assert.False(t, ws.Notification.Active(now.Add(domain.NotificationLifetime)))

	var none *domain.Notification
	assert.False(t, none.Active(now))
}

func TestWorkspace_CloneIsDeep(t *testing.T) {
	ws := domain.NewWorkspace("user", domain.NewSampleDraft())
	ws.Touched["vendor"] = true

	cp := ws.Clone()
	cp.Draft.Expenses[0].LineAmount = "999"
	cp.Touched["address"] = true

	assert.Equal(t, "100", ws.Draft.Expenses[0].LineAmount)
	assert.False(t, ws.Touched["address"])
}
