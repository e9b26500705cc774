package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/kv"
)

var (
	ErrInvalidQty     = errors.New("quantity must be a positive integer")
	ErrUnknownVariant = errors.New("variant not offered for product")
)

// Engine is the in-memory cart. Every mutation writes the full collection to
// the store before returning; if that write fails the cart is left unchanged.
// Engine is not safe for concurrent use.
type Engine struct {
	store kv.Store
	log   *zap.Logger
	lines []Line
}

// NewEngine restores the cart saved under kv.KeyCart. A missing or unreadable
// document starts an empty cart.
func NewEngine(ctx context.Context, store kv.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{store: store, log: log, lines: []Line{}}

	var saved []Line
	if _, err := kv.GetJSON(ctx, store, kv.KeyCart, &saved); err != nil {
		log.Warn("starting with empty cart", zap.Error(err))
		return e
	}
	for _, l := range saved {
		if l.Qty <= 0 {
			log.Warn("dropping saved cart line with bad quantity",
				zap.Int64("product_id", l.ID), zap.Int("qty", l.Qty))
			continue
		}
		e.lines = append(e.lines, l)
	}
	return e
}

// Add merges qty into the line for (product.ID, variant) or appends a new
// line holding a copy of product.
func (e *Engine) Add(ctx context.Context, product catalog.Product, qty int, variant string) (Line, error) {
	if qty <= 0 {
		return Line{}, ErrInvalidQty
	}
	if variant != "" && !product.HasVariant(variant) {
		return Line{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	next := cloneLines(e.lines)
	idx := -1
	for i := range next {
		if next[i].matches(product.ID, variant) {
			idx = i
			break
		}
	}

	if idx >= 0 {
		next[idx].Qty += qty
	} else {
		next = append(next, Line{Product: product.Clone(), Qty: qty, Variant: variant})
		idx = len(next) - 1
	}

	if err := e.commit(ctx, next); err != nil {
		return Line{}, err
	}
	return next[idx], nil
}

// Remove drops every line for id whatever its variant, and reports how many
// lines went. Removing an id that is not in the cart is a no-op.
func (e *Engine) Remove(ctx context.Context, id int64) (int, error) {
	next := make([]Line, 0, len(e.lines))
	for _, l := range e.lines {
		if l.ID != id {
			next = append(next, l)
		}
	}

	removed := len(e.lines) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := e.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

func (e *Engine) Clear(ctx context.Context) error {
	return e.commit(ctx, []Line{})
}

func (e *Engine) commit(ctx context.Context, next []Line) error {
	if err := kv.PutJSON(ctx, e.store, kv.KeyCart, next); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	e.lines = next
	return nil
}

func (e *Engine) Lines() []Line { return cloneLines(e.lines) }

func (e *Engine) Total() float64 { return Total(e.lines) }

func (e *Engine) Count() int { return Count(e.lines) }

func (e *Engine) Empty() bool { return len(e.lines) == 0 }
