// Package view renders the page state as plain data. Each function is pure:
// it reads a snapshot and returns what the page shows, placeholders included.
package view

import (
	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
)

type CatalogStatus string

const (
	CatalogLoading   CatalogStatus = "loading"
	CatalogFailed    CatalogStatus = "failed"
	CatalogNoResults CatalogStatus = "no_results"
	CatalogReady     CatalogStatus = "ready"
)

const (
	MsgLoading       = "Loading products..."
	MsgLoadFailed    = "Failed to load products."
	MsgNoResults     = "No products found"
	MsgCartEmpty     = "Your cart is empty"
	MsgEmptyCheckout = "Your cart is empty!"
)

type ProductCard struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Image        string  `json:"image"`
	Description  string  `json:"description,omitempty"`
	HasVariants  bool    `json:"has_variants"`
}

func Card(p catalog.Product) ProductCard {
	return ProductCard{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: cart.FormatMoney(p.Price),
		Image:        p.Image,
		Description:  p.Description,
		HasVariants:  len(p.Variants) > 0,
	}
}

type CatalogView struct {
	Status   CatalogStatus `json:"status"`
	Message  string        `json:"message,omitempty"`
	Query    string        `json:"query,omitempty"`
	Products []ProductCard `json:"products"`
}

// Catalog renders the grid for the products matching query. Loading, failed
// and no-result states each carry their own message.
func Catalog(state catalog.State, products []catalog.Product, query string) CatalogView {
	v := CatalogView{Query: query, Products: []ProductCard{}}

	switch state {
	case catalog.StateFailed:
		v.Status, v.Message = CatalogFailed, MsgLoadFailed
		return v
	case catalog.StateReady:
	default:
		v.Status, v.Message = CatalogLoading, MsgLoading
		return v
	}

	if len(products) == 0 {
		v.Status, v.Message = CatalogNoResults, MsgNoResults
		return v
	}

	v.Status = CatalogReady
	for _, p := range products {
		v.Products = append(v.Products, Card(p))
	}
	return v
}

type CartLineView struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Name      string `json:"name"`
	Variant   string `json:"variant,omitempty"`
	Image     string `json:"image"`
	Qty       int    `json:"qty"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
}

type CartView struct {
	Lines       []CartLineView `json:"lines"`
	Empty       bool           `json:"empty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Total       string         `json:"total"`
	Count       int            `json:"count"`
}

func Cart(lines []cart.Line) CartView {
	v := CartView{
		Lines: make([]CartLineView, 0, len(lines)),
		Total: cart.FormatMoney(cart.Total(lines)),
		Count: cart.Count(lines),
	}
	if len(lines) == 0 {
		v.Empty = true
		v.Placeholder = MsgCartEmpty
		return v
	}

	for _, l := range lines {
		title := l.Name
		if l.Variant != "" {
			title += " (" + l.Variant + ")"
		}
		v.Lines = append(v.Lines, CartLineView{
			ProductID: l.ID,
			Title:     title,
			Name:      l.Name,
			Variant:   l.Variant,
			Image:     l.Image,
			Qty:       l.Qty,
			Price:     cart.FormatMoney(l.Price),
			Subtotal:  cart.FormatMoney(l.Subtotal()),
		})
	}
	return v
}

type VariantOption struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// DetailsView is the product overlay with its variant picker and quantity.
type DetailsView struct {
	Product  ProductCard     `json:"product"`
	Variants []VariantOption `json:"variants"`
	Qty      int             `json:"qty"`
}

// Details preselects the first variant and a quantity of one.
func Details(p catalog.Product) DetailsView {
	v := DetailsView{
		Product:  Card(p),
		Variants: make([]VariantOption, 0, len(p.Variants)),
		Qty:      1,
	}
	for i, label := range p.Variants {
		v.Variants = append(v.Variants, VariantOption{Label: label, Active: i == 0})
	}
	return v
}

type CheckoutView struct {
	State        checkout.State `json:"state"`
	CartOpen     bool           `json:"cart_open"`
	Confirming   bool           `json:"confirming"`
	ScrollLocked bool           `json:"scroll_locked"`
}

func Checkout(state checkout.State) CheckoutView {
	return CheckoutView{
		State:        state,
		CartOpen:     state == checkout.CartOpen || state == checkout.OrderConfirming,
		Confirming:   state == checkout.OrderConfirming,
		ScrollLocked: state != checkout.Browsing,
	}
}

type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// StorefrontView is the whole shopper page.
type StorefrontView struct {
	Catalog  CatalogView  `json:"catalog"`
	Cart     CartView     `json:"cart"`
	Checkout CheckoutView `json:"checkout"`
	Toasts   []Toast      `json:"toasts"`
}

// Snapshot is the state a shopper page is rendered from.
type Snapshot struct {
	CatalogState  catalog.State
	Products      []catalog.Product
	Query         string
	Lines         []cart.Line
	CheckoutState checkout.State
	Toasts        []Toast
}

func Storefront(s Snapshot) StorefrontView {
	toasts := s.Toasts
	if toasts == nil {
		toasts = []Toast{}
	}
	return StorefrontView{
		Catalog:  Catalog(s.CatalogState, s.Products, s.Query),
		Cart:     Cart(s.Lines),
		Checkout: Checkout(s.CheckoutState),
		Toasts:   toasts,
	}
}
