// Package checkout drives the Browsing -> CartOpen -> OrderConfirming ->
// Browsing cycle. Closing the confirmation empties the cart. No order is
// recorded or sent anywhere; this is a local demo checkout.
package checkout

import (
	"context"
	"errors"
	"fmt"
)

type State string

const (
	Browsing        State = "browsing"
	CartOpen        State = "cart_open"
	OrderConfirming State = "order_confirming"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// Cart is what the flow needs from the cart engine.
type Cart interface {
	Empty() bool
	Clear(ctx context.Context) error
}

type Flow struct {
	cart  Cart
	state State
}

func NewFlow(c Cart) *Flow {
	return &Flow{cart: c, state: Browsing}
}

func (f *Flow) State() State { return f.state }

// ScrollLocked is true while the drawer or the confirmation is showing.
func (f *Flow) ScrollLocked() bool { return f.state != Browsing }

func (f *Flow) OpenCart() error {
	switch f.state {
	case Browsing, CartOpen:
		f.state = CartOpen
		return nil
	default:
		return f.invalid("open cart")
	}
}

func (f *Flow) CloseCart() error {
	switch f.state {
	case Browsing, CartOpen:
		f.state = Browsing
		return nil
	default:
		return f.invalid("close cart")
	}
}

// Checkout moves to the confirmation. An empty cart fails without any state
// change.
func (f *Flow) Checkout() error {
	if f.state != CartOpen {
		return f.invalid("checkout")
	}
	if f.cart.Empty() {
		return ErrEmptyCart
	}
	f.state = OrderConfirming
	return nil
}

// CloseConfirmation clears the cart and returns to browsing. The state only
// changes once the cleared cart has been persisted.
func (f *Flow) CloseConfirmation(ctx context.Context) error {
	if f.state != OrderConfirming {
		return f.invalid("close confirmation")
	}
	if err := f.cart.Clear(ctx); err != nil {
		return err
	}
	f.state = Browsing
	return nil
}

func (f *Flow) invalid(action string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, f.state)
}
