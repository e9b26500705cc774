package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogLoad = errors.New("catalog load failed")
	ErrNotReady    = errors.New("catalog not ready")
	ErrNotFound    = errors.New("product not found")

	errBadStatus = errors.New("catalog bad status")
)

// LoadError reports why the default product document could not be fetched
// or decoded. It matches ErrCatalogLoad.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrCatalogLoad }
