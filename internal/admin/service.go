package admin

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/kv"
)

// Service appends to and deletes from the customProducts collection. Every
// change rewrites the whole collection. Not safe for concurrent use.
type Service struct {
	store  kv.Store
	log    *zap.Logger
	now    func() time.Time
	lastID int64
}

func NewService(store kv.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock replaces the id clock; tests use it for deterministic ids.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CustomProducts(ctx context.Context) []catalog.Product {
	ps, err := catalog.CustomProducts(ctx, s.store)
	if err != nil {
		s.log.Warn("ignoring unreadable custom products", zap.Error(err))
	}
	return ps
}

// AddProduct validates the form and appends a product with a fresh id.
// Nothing is written when validation fails.
func (s *Service) AddProduct(ctx context.Context, in NewProduct) (catalog.Product, error) {
	v, err := in.validate()
	if err != nil {
		return catalog.Product{}, err
	}

	existing := s.CustomProducts(ctx)
	p := catalog.Product{
		ID:          s.nextID(existing),
		Name:        v.name,
		Price:       v.price,
		Image:       v.image,
		Description: v.description,
		Variants:    v.variants,
	}

	if err := catalog.SaveCustomProducts(ctx, s.store, append(existing, p)); err != nil {
		return catalog.Product{}, fmt.Errorf("save custom products: %w", err)
	}

	s.log.Info("custom product added", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// DeleteProduct removes id from the custom products. Ids that are not
// custom products, default ones included, are left alone and report false.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	existing := s.CustomProducts(ctx)

	kept := slices.DeleteFunc(slices.Clone(existing), func(p catalog.Product) bool { return p.ID == id })
	if len(kept) == len(existing) {
		return false, nil
	}

	if err := catalog.SaveCustomProducts(ctx, s.store, kept); err != nil {
		return false, fmt.Errorf("save custom products: %w", err)
	}

	s.log.Info("custom product deleted", zap.Int64("id", id))
	return true, nil
}

// nextID is the current Unix millisecond, bumped past anything issued or
// stored already so ids stay unique within the session.
func (s *Service) nextID(existing []catalog.Product) int64 {
	id := s.now().UnixMilli()
	floor := s.lastID
	for _, p := range existing {
		floor = max(floor, p.ID)
	}
	if id <= floor {
		id = floor + 1
	}
	s.lastID = id
	return id
}
