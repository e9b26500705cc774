// Package admin manages the custom products added from the admin page.
//
// The Gate is a confirm-action step that asks the operator to type a phrase
// before a mutation. It runs in the same process that holds the phrase and
// is not an access-control boundary; do not build authentication on it.
package admin

import "errors"

var ErrGateRejected = errors.New("confirmation phrase mismatch")

type Gate struct {
	phrase string
}

// NewGate returns a gate for phrase. An empty phrase disables the check.
func NewGate(phrase string) *Gate {
	return &Gate{phrase: phrase}
}

// Confirm compares input with the phrase exactly.
func (g *Gate) Confirm(input string) error {
	if g.phrase == "" || input == g.phrase {
		return nil
	}
	return ErrGateRejected
}
