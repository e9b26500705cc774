package shop

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/admin"
	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/internal/view"
	"Storefront/pkg/kit"
)

const (
	maxBodyBytes   = 1 << 20
	maxUploadBytes = 10 << 20

	confirmHeader = "X-Confirm"
)

type Server struct {
	Shop *Shop
	Log  *zap.Logger
}

// Routes wires the shopper and admin endpoints. gateLimit wraps the admin
// mutations.
func (s *Server) Routes(gateLimit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Get("/storefront", s.storefront)

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.productDetails)

	r.Route("/cart", func(rr chi.Router) {
		rr.Get("/", s.getCart)
		rr.Post("/items", s.addToCart)
		rr.Delete("/items/{id}", s.removeFromCart)
		rr.Post("/open", s.openCart)
		rr.Post("/close", s.closeCart)
	})

	r.Post("/checkout", s.checkout)
	r.Post("/checkout/close", s.closeConfirmation)

	r.Route("/admin/products", func(rr chi.Router) {
		rr.Get("/", s.adminProducts)
		rr.With(gateLimit).Post("/", s.adminAddProduct)
		rr.With(gateLimit).Delete("/{id}", s.adminDeleteProduct)
	})

	return r
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Shop.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"catalog": s.Shop.CatalogState()})
}

func (s *Server) storefront(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.Storefront(query(r)))
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.Catalog(query(r)))
}

func (s *Server) productDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := s.Shop.Details(id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, d)
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.Cart())
}

type addToCartReq struct {
	ProductID int64  `json:"product_id"`
	Qty       *int   `json:"qty,omitempty"`
	Variant   string `json:"variant,omitempty"`
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := kit.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	page, err := s.Shop.AddToCart(r.Context(), req.ProductID, qty, strings.TrimSpace(req.Variant), query(r))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, page)
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page, err := s.Shop.RemoveFromCart(r.Context(), id, query(r))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, page)
}

func (s *Server) openCart(w http.ResponseWriter, r *http.Request) {
	s.respondPage(w, r)(s.Shop.OpenCart(query(r)))
}

func (s *Server) closeCart(w http.ResponseWriter, r *http.Request) {
	s.respondPage(w, r)(s.Shop.CloseCart(query(r)))
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	s.respondPage(w, r)(s.Shop.Checkout(query(r)))
}

func (s *Server) closeConfirmation(w http.ResponseWriter, r *http.Request) {
	s.respondPage(w, r)(s.Shop.CloseConfirmation(r.Context(), query(r)))
}

func (s *Server) respondPage(w http.ResponseWriter, r *http.Request) func(view.StorefrontView, error) {
	return func(page view.StorefrontView, err error) {
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		kit.WriteJSON(w, http.StatusOK, page)
	}
}

func (s *Server) adminProducts(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.Admin(r.Context()))
}

type adminAddResp struct {
	Product catalog.Product `json:"product"`
	Message string          `json:"message"`
	Admin   view.AdminView  `json:"admin"`
}

// adminAddProduct takes the multipart admin form: name, price, description,
// variants, confirm, and either an image file or an image_url field.
func (s *Server) adminAddProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad form", map[string]any{"cause": err.Error()})
		return
	}

	in := admin.NewProduct{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
		Variants:    r.FormValue("variants"),
		Image:       r.FormValue("image_url"),
	}
	if err := formImage(r, &in); err != nil {
		s.writeErr(w, r, err)
		return
	}

	p, av, err := s.Shop.AddProduct(r.Context(), r.FormValue("confirm"), in)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, adminAddResp{Product: p, Message: view.MsgProductAdded, Admin: av})
}

// formImage attaches the uploaded file, if any. It is converted after the
// confirmation step.
func formImage(r *http.Request, in *admin.NewProduct) error {
	f, hdr, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	in.ImageType = hdr.Header.Get("Content-Type")
	in.ImageData = data
	return nil
}

type adminDeleteResp struct {
	Deleted bool           `json:"deleted"`
	Message string         `json:"message,omitempty"`
	Admin   view.AdminView `json:"admin"`
}

func (s *Server) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, av, err := s.Shop.DeleteProduct(r.Context(), r.Header.Get(confirmHeader), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	resp := adminDeleteResp{Deleted: deleted, Admin: av}
	if deleted {
		resp.Message = view.MsgProductDeleted
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *admin.ValidationError

	switch {
	case errors.Is(err, catalog.ErrCatalogLoad):
		kit.WriteError(w, r, http.StatusServiceUnavailable, view.MsgLoadFailed, nil)
	case errors.Is(err, catalog.ErrNotReady):
		kit.WriteError(w, r, http.StatusConflict, "catalog not ready", nil)
	case errors.Is(err, catalog.ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "product not found", nil)
	case errors.Is(err, cart.ErrInvalidQty), errors.Is(err, cart.ErrUnknownVariant):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, checkout.ErrEmptyCart):
		kit.WriteError(w, r, http.StatusConflict, view.MsgEmptyCheckout, nil)
	case errors.Is(err, checkout.ErrInvalidTransition):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, admin.ErrGateRejected):
		kit.WriteError(w, r, http.StatusForbidden, view.MsgGateRejected, nil)
	case errors.As(err, &verr):
		kit.WriteError(w, r, http.StatusBadRequest, view.MsgFillFields, map[string]any{
			"field":   verr.Field,
			"message": verr.Message,
		})
	default:
		s.logger().Error("request failed", zap.Error(err), zap.String("path", r.URL.Path))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func query(r *http.Request) string {
	return r.URL.Query().Get("q")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}
