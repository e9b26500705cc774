// Package catalog loads the bundled default products, merges the
// admin-added ones from the persisted store and searches the result.
package catalog

import "slices"

// Product is an immutable catalog entry.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description,omitempty"`
	Variants    []string `json:"variants,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	p.Variants = slices.Clone(p.Variants)
	return p
}

// HasVariant reports whether v is one of the product's variant labels.
func (p Product) HasVariant(v string) bool {
	return slices.Contains(p.Variants, v)
}

func cloneAll(ps []Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}
