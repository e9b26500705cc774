package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/internal/kv"
)

type fakeCart struct {
	empty    bool
	clears   int
	clearErr error
}

func (c *fakeCart) Empty() bool { return c.empty }

func (c *fakeCart) Clear(context.Context) error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.clears++
	c.empty = true
	return nil
}

func TestFlow_HappyPath(t *testing.T) {
	ctx := context.Background()
	c := &fakeCart{}
	f := checkout.NewFlow(c)

	assert.Equal(t, checkout.Browsing, f.State())
	assert.False(t, f.ScrollLocked())

	require.NoError(t, f.OpenCart())
	assert.Equal(t, checkout.CartOpen, f.State())
	assert.True(t, f.ScrollLocked())

	require.NoError(t, f.Checkout())
	assert.Equal(t, checkout.OrderConfirming, f.State())
	assert.True(t, f.ScrollLocked())

	require.NoError(t, f.CloseConfirmation(ctx))
	assert.Equal(t, checkout.Browsing, f.State())
	assert.False(t, f.ScrollLocked())
	assert.Equal(t, 1, c.clears)
}

func TestFlow_EmptyCartCheckoutKeepsState(t *testing.T) {
	f := checkout.NewFlow(&fakeCart{empty: true})
	require.NoError(t, f.OpenCart())

	err := f.Checkout()
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Equal(t, checkout.CartOpen, f.State())
}

func TestFlow_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	f := checkout.NewFlow(&fakeCart{})

	assert.ErrorIs(t, f.Checkout(), checkout.ErrInvalidTransition)
	assert.ErrorIs(t, f.CloseConfirmation(ctx), checkout.ErrInvalidTransition)

	require.NoError(t, f.OpenCart())
	require.NoError(t, f.OpenCart(), "opening twice is harmless")
	require.NoError(t, f.Checkout())

	assert.ErrorIs(t, f.OpenCart(), checkout.ErrInvalidTransition)
	assert.ErrorIs(t, f.CloseCart(), checkout.ErrInvalidTransition)
	assert.ErrorIs(t, f.Checkout(), checkout.ErrInvalidTransition)
	assert.Equal(t, checkout.OrderConfirming, f.State())
}

func TestFlow_ClearFailureStaysConfirming(t *testing.T) {
	ctx := context.Background()
	c := &fakeCart{}
	f := checkout.NewFlow(c)
	require.NoError(t, f.OpenCart())
	require.NoError(t, f.Checkout())

	c.clearErr = errors.New("store down")
	assert.Error(t, f.CloseConfirmation(ctx))
	assert.Equal(t, checkout.OrderConfirming, f.State())
}

func TestFlow_EndToEndWithEngine(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()

	l := catalog.NewLoader(staticSource{{ID: 1, Name: "Pen", Price: 10}}, store, nil)
	require.NoError(t, l.Load(ctx))
	require.Len(t, l.Products(), 1)

	e := cart.NewEngine(ctx, store, nil)
	p, err := l.Find(1)
	require.NoError(t, err)
	_, err = e.Add(ctx, p, 3, "")
	require.NoError(t, err)
	assert.Equal(t, "30.00", cart.FormatMoney(e.Total()))
	assert.Equal(t, 3, e.Count())

	f := checkout.NewFlow(e)
	require.NoError(t, f.OpenCart())
	require.NoError(t, f.Checkout())
	require.NoError(t, f.CloseConfirmation(ctx))

	assert.True(t, e.Empty())
	assert.Zero(t, e.Count())

	raw, found, err := store.Get(ctx, kv.KeyCart)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[]`, string(raw))
}

type staticSource []catalog.Product

func (s staticSource) Fetch(context.Context) ([]catalog.Product, error) { return s, nil }

func (s staticSource) String() string { return "static" }
