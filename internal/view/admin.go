package view

import "Storefront/internal/catalog"

const (
	LabelDefault      = "Default"
	MsgNoCustom       = "No custom products yet"
	MsgProductAdded   = "Product Added Successfully!"
	MsgProductDeleted = "Product Deleted Successfully!"
	MsgGateRejected   = "Confirmation phrase did not match"
	MsgFillFields     = "Please fill all fields correctly!"
)

type AdminEntry struct {
	ProductCard
	Deletable bool   `json:"deletable"`
	Label     string `json:"label,omitempty"`
}

type AdminView struct {
	Status      CatalogStatus `json:"status"`
	Message     string        `json:"message,omitempty"`
	Products    []AdminEntry  `json:"products"`
	CustomCount int           `json:"custom_count"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// Admin lists default products read-only, then custom products as
// deletable. Custom products are listed even when the defaults failed to load.
func Admin(state catalog.State, defaults, custom []catalog.Product) AdminView {
	v := AdminView{
		Products:    make([]AdminEntry, 0, len(defaults)+len(custom)),
		CustomCount: len(custom),
	}

	switch state {
	case catalog.StateReady:
		v.Status = CatalogReady
		for _, p := range defaults {
			v.Products = append(v.Products, AdminEntry{ProductCard: Card(p), Label: LabelDefault})
		}
	case catalog.StateFailed:
		v.Status, v.Message = CatalogFailed, MsgLoadFailed
	default:
		v.Status, v.Message = CatalogLoading, MsgLoading
	}

	for _, p := range custom {
		v.Products = append(v.Products, AdminEntry{ProductCard: Card(p), Deletable: true})
	}
	if len(custom) == 0 {
		v.Placeholder = MsgNoCustom
	}
	return v
}
