package catalog

import (
	"context"

	"Storefront/internal/kv"
)

// CustomProducts reads the admin-added products. An absent key yields an
// empty slice; a malformed document is returned as an error together with an
// empty slice so callers can log it and carry on.
func CustomProducts(ctx context.Context, store kv.Store) ([]Product, error) {
	var ps []Product
	if _, err := kv.GetJSON(ctx, store, kv.KeyCustomProducts, &ps); err != nil {
		return []Product{}, err
	}
	if ps == nil {
		ps = []Product{}
	}
	return ps, nil
}

// SaveCustomProducts rewrites the whole collection.
func SaveCustomProducts(ctx context.Context, store kv.Store, ps []Product) error {
	if ps == nil {
		ps = []Product{}
	}
	return kv.PutJSON(ctx, store, kv.KeyCustomProducts, ps)
}
