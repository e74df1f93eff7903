package domain

// Vendor is an entry of the fixed vendor catalog.
type Vendor struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Catalog kinds accepted by CatalogValues and the "catalog" validation rule.
const (
	CatalogDepartment    = "department"
	CatalogAccount       = "account"
	CatalogLocation      = "location"
	CatalogPurchaseOrder = "purchaseOrder"
)

var vendors = []Vendor{
	{Name: "A-1 Exterminators", Address: "500 Main St, Lynn"},
	{Name: "Vendor 2", Address: "123 Some St, City"},
	{Name: "Vendor 3", Address: "456 Another Rd, Town"},
}

var catalogs = map[string][]string{
	CatalogDepartment:    {"HR", "Finance", "IT", "Sales"},
	CatalogAccount:       {"Account 1", "Account 2", "Account 3"},
	CatalogLocation:      {"Location 1", "Location 2", "Location 3"},
	CatalogPurchaseOrder: {"PO-001", "PO-002", "PO-003"},
}

// Vendors returns a copy of the vendor catalog.
func Vendors() []Vendor {
	out := make([]Vendor, len(vendors))
	copy(out, vendors)
	return out
}

// FindVendor looks a vendor up by exact name.
func FindVendor(name string) (Vendor, bool) {
	for _, v := range vendors {
		if v.Name == name {
			return v, true
		}
	}
	return Vendor{}, false
}

// CatalogValues returns a copy of the named catalog.
func CatalogValues(kind string) ([]string, bool) {
	values, ok := catalogs[kind]
	if !ok {
		return nil, false
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, true
}

// CatalogContains reports whether value is a member of the named catalog.
func CatalogContains(kind, value string) bool {
	for _, v := range catalogs[kind] {
		if v == value {
			return true
		}
	}
	return false
}
