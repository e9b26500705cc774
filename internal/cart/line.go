// Package cart holds the shopper's cart lines and keeps the persisted copy
// in step with every change.
package cart

import (
	"Storefront/internal/catalog"
)

// Line is a product copied at add time plus the chosen quantity and variant.
// An empty Variant means the product was added without a variant choice.
type Line struct {
	catalog.Product
	Qty     int    `json:"qty"`
	Variant string `json:"variant,omitempty"`
}

func (l Line) matches(id int64, variant string) bool {
	return l.ID == id && l.Variant == variant
}

// Subtotal is price times quantity, unrounded.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Qty)
}

// Total sums price*qty over lines without rounding.
func Total(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Count sums the quantities, which is what the cart badge shows.
func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Qty
	}
	return n
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		l.Product = l.Product.Clone()
		out[i] = l
	}
	return out
}
