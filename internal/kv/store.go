// Package kv is the persisted key/value map behind the cart and the
// admin-added products. Values are opaque documents; callers own encoding.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the two independent collections.
const (
	KeyCart           = "cart"
	KeyCustomProducts = "customProducts"
)

var (
	ErrClosed    = errors.New("kv: store closed")
	ErrMalformed = errors.New("kv: malformed document")
)

// Store is a synchronous key/value map. Each Put replaces the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the document at key into v. found is false when the key is
// absent; a decode failure is returned as an error wrapping ErrMalformed.
func GetJSON(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key in a single write.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}
