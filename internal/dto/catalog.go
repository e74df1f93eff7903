package dto

import "github.com/SscSPs/invoice_drafting_app/internal/core/domain"

// CatalogResponse lists the fixed choices offered by the invoice form.
type CatalogResponse struct {
	Vendors        []domain.Vendor `json:"vendors"`
	Departments    []string        `json:"departments"`
	Accounts       []string        `json:"accounts"`
	Locations      []string        `json:"locations"`
	PurchaseOrders []string        `json:"purchaseOrders"`
}

// NewCatalogResponse collects every catalog.
func NewCatalogResponse() CatalogResponse {
	values := func(kind string) []string {
		v, _ := domain.CatalogValues(kind)
		return v
	}
	return CatalogResponse{
		Vendors:        domain.Vendors(),
		Departments:    values(domain.CatalogDepartment),
		Accounts:       values(domain.CatalogAccount),
		Locations:      values(domain.CatalogLocation),
		PurchaseOrders: values(domain.CatalogPurchaseOrder),
	}
}
