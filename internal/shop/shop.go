// Package shop is the application root. Shop owns the catalog loader, the
// cart, the checkout flow and the admin service, and runs every event to
// completion under one lock before the next one starts.
package shop

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/internal/admin"
	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/internal/kv"
	"Storefront/internal/view"
)

const toastTTL = 2 * time.Second

type Deps struct {
	Store         kv.Store
	Source        catalog.Source
	ConfirmPhrase string
	Log           *zap.Logger
	Registry      prometheus.Registerer
	Now           func() time.Time
}

type toast struct {
	view.Toast
	expires time.Time
}

type Shop struct {
	mu sync.Mutex

	store   kv.Store
	loader  *catalog.Loader
	cart    *cart.Engine
	flow    *checkout.Flow
	admin   *admin.Service
	gate    *admin.Gate
	log     *zap.Logger
	metrics *shopMetrics
	now     func() time.Time
	toasts  []toast
}

// New restores the cart from the store. The catalog stays in the loading
// state until LoadCatalog runs.
func New(ctx context.Context, deps Deps) *Shop {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	engine := cart.NewEngine(ctx, deps.Store, log.Named("cart"))
	s := &Shop{
		store:   deps.Store,
		loader:  catalog.NewLoader(deps.Source, deps.Store, log.Named("catalog")),
		cart:    engine,
		flow:    checkout.NewFlow(engine),
		admin:   admin.NewService(deps.Store, log.Named("admin")).WithClock(now),
		gate:    admin.NewGate(deps.ConfirmPhrase),
		log:     log,
		metrics: newShopMetrics(deps.Registry),
		now:     now,
	}
	s.metrics.setCatalogState(catalog.StateLoading)
	return s
}

// LoadCatalog performs the one catalog fetch. It is meant to run on its own
// goroutine; requests are served while it is in flight.
func (s *Shop) LoadCatalog(ctx context.Context) error {
	err := s.loader.Load(ctx)
	s.metrics.setCatalogState(s.loader.State())
	if err != nil {
		return err
	}

	// Admin changes made while the fetch was in flight were not merged.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afterAdminChange(ctx)
	return nil
}

func (s *Shop) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Shop) CatalogState() catalog.State { return s.loader.State() }

// Storefront renders the whole shopper page for query.
func (s *Shop) Storefront(query string) view.StorefrontView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render(query)
}

func (s *Shop) render(query string) view.StorefrontView {
	products, _ := s.loader.Search(query)
	return view.Storefront(view.Snapshot{
		CatalogState:  s.loader.State(),
		Products:      products,
		Query:         query,
		Lines:         s.cart.Lines(),
		CheckoutState: s.flow.State(),
		Toasts:        s.activeToasts(),
	})
}

// Catalog renders the product grid. Before the catalog is ready the search
// is ignored and the loading state is shown.
func (s *Shop) Catalog(query string) view.CatalogView {
	products, _ := s.loader.Search(query)
	return view.Catalog(s.loader.State(), products, query)
}

func (s *Shop) Details(id int64) (view.DetailsView, error) {
	p, err := s.findProduct(id)
	if err != nil {
		return view.DetailsView{}, err
	}
	return view.Details(p), nil
}

func (s *Shop) Cart() view.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Cart(s.cart.Lines())
}

func (s *Shop) findProduct(id int64) (catalog.Product, error) {
	if err := s.loader.Err(); err != nil {
		return catalog.Product{}, err
	}
	return s.loader.Find(id)
}

func (s *Shop) AddToCart(ctx context.Context, id int64, qty int, variant, query string) (view.StorefrontView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findProduct(id)
	if err != nil {
		return view.StorefrontView{}, err
	}
	if _, err := s.cart.Add(ctx, p, qty, variant); err != nil {
		return view.StorefrontView{}, err
	}

	s.metrics.cartMutations.WithLabelValues("add").Inc()
	s.pushToast(p.Name + " added to cart!")
	return s.render(query), nil
}

func (s *Shop) RemoveFromCart(ctx context.Context, id int64, query string) (view.StorefrontView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.cart.Remove(ctx, id)
	if err != nil {
		return view.StorefrontView{}, err
	}
	if n > 0 {
		s.metrics.cartMutations.WithLabelValues("remove").Inc()
	}
	return s.render(query), nil
}

func (s *Shop) OpenCart(query string) (view.StorefrontView, error) {
	return s.transition(query, s.flow.OpenCart)
}

func (s *Shop) CloseCart(query string) (view.StorefrontView, error) {
	return s.transition(query, s.flow.CloseCart)
}

func (s *Shop) Checkout(query string) (view.StorefrontView, error) {
	return s.transition(query, s.flow.Checkout)
}

// CloseConfirmation finalizes the demo order: the cart is emptied and nothing
// else is recorded.
func (s *Shop) CloseConfirmation(ctx context.Context, query string) (view.StorefrontView, error) {
	return s.transition(query, func() error {
		if err := s.flow.CloseConfirmation(ctx); err != nil {
			return err
		}
		s.metrics.cartMutations.WithLabelValues("clear").Inc()
		s.log.Info("order confirmation closed, cart cleared")
		return nil
	})
}

func (s *Shop) transition(query string, fn func() error) (view.StorefrontView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return view.StorefrontView{}, err
	}
	return s.render(query), nil
}

func (s *Shop) Admin(ctx context.Context) view.AdminView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderAdmin(ctx)
}

func (s *Shop) renderAdmin(ctx context.Context) view.AdminView {
	return view.Admin(s.loader.State(), s.loader.Defaults(), s.admin.CustomProducts(ctx))
}

// AddProduct runs the confirmation step, then the validated append. A
// rejected confirmation discards the action.
func (s *Shop) AddProduct(ctx context.Context, confirm string, in admin.NewProduct) (catalog.Product, view.AdminView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.confirm(confirm, "add"); err != nil {
		return catalog.Product{}, view.AdminView{}, err
	}

	p, err := s.admin.AddProduct(ctx, in)
	if err != nil {
		return catalog.Product{}, view.AdminView{}, err
	}

	s.afterAdminChange(ctx)
	return p, s.renderAdmin(ctx), nil
}

// DeleteProduct removes a custom product. Unknown and default ids are a
// no-op reported as false.
func (s *Shop) DeleteProduct(ctx context.Context, confirm string, id int64) (bool, view.AdminView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.confirm(confirm, "delete"); err != nil {
		return false, view.AdminView{}, err
	}

	deleted, err := s.admin.DeleteProduct(ctx, id)
	if err != nil {
		return false, view.AdminView{}, err
	}
	if deleted {
		s.afterAdminChange(ctx)
	}
	return deleted, s.renderAdmin(ctx), nil
}

func (s *Shop) confirm(input, action string) error {
	if err := s.gate.Confirm(input); err != nil {
		s.metrics.gateRejections.Inc()
		s.log.Warn("admin action discarded", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

func (s *Shop) afterAdminChange(ctx context.Context) {
	s.loader.Refresh(ctx)
	s.metrics.customProducts.Set(float64(len(s.admin.CustomProducts(ctx))))
}

func (s *Shop) pushToast(msg string) {
	s.toasts = append(s.pruneToasts(), toast{
		Toast:   view.Toast{ID: "t_" + uuid.NewString(), Message: msg},
		expires: s.now().Add(toastTTL),
	})
}

func (s *Shop) activeToasts() []view.Toast {
	s.toasts = s.pruneToasts()
	out := make([]view.Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		out = append(out, t.Toast)
	}
	return out
}

func (s *Shop) pruneToasts() []toast {
	now := s.now()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	return kept
}
