package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"Storefront/internal/kv"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Loader owns the merged catalog. The default document is fetched once per
// process; a failed fetch is final.
type Loader struct {
	source Source
	store  kv.Store
	log    *zap.Logger

	once sync.Once

	mu       sync.RWMutex
	state    State
	loadErr  error
	defaults []Product
	merged   []Product
}

func NewLoader(source Source, store kv.Store, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		source: source,
		store:  store,
		log:    log,
		state:  StateLoading,
	}
}

// Load fetches defaults and merges custom products. Only the first call does
// any work; later calls return its result.
func (l *Loader) Load(ctx context.Context) error {
	l.once.Do(func() { _ = l.load(ctx) })

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadErr
}

func (l *Loader) load(ctx context.Context) error {
	defaults, err := l.source.Fetch(ctx)
	if err != nil {
		lerr := &LoadError{Source: l.source.String(), Err: err}
		l.log.Error("failed to load products", zap.Error(lerr))

		l.mu.Lock()
		l.state = StateFailed
		l.loadErr = lerr
		l.mu.Unlock()
		return lerr
	}

	custom := l.readCustom(ctx)

	l.mu.Lock()
	l.defaults = defaults
	l.merged = merge(defaults, custom)
	l.state = StateReady
	l.mu.Unlock()

	l.log.Info("catalog loaded",
		zap.Int("defaults", len(defaults)),
		zap.Int("custom", len(custom)),
	)
	return nil
}

// Refresh re-merges the cached defaults with the current custom products
// without refetching. It does nothing before the catalog is ready.
func (l *Loader) Refresh(ctx context.Context) {
	if !l.Ready() {
		return
	}

	custom := l.readCustom(ctx)

	l.mu.Lock()
	l.merged = merge(l.defaults, custom)
	l.mu.Unlock()
}

func (l *Loader) readCustom(ctx context.Context) []Product {
	custom, err := CustomProducts(ctx, l.store)
	if err != nil {
		l.log.Warn("ignoring unreadable custom products", zap.Error(err))
	}
	return custom
}

func merge(defaults, custom []Product) []Product {
	out := make([]Product, 0, len(defaults)+len(custom))
	out = append(out, defaults...)
	return append(out, custom...)
}

func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Loader) Ready() bool { return l.State() == StateReady }

// Err is the load failure, nil while loading or after success.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadErr
}

func (l *Loader) Products() []Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.merged)
}

func (l *Loader) Defaults() []Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.defaults)
}

// Search filters the merged catalog. Before the catalog is ready it is
// ignored and reports false.
func (l *Loader) Search(query string) ([]Product, bool) {
	if !l.Ready() {
		return nil, false
	}
	return Filter(query, l.Products()), true
}

func (l *Loader) Find(id int64) (Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.state != StateReady {
		return Product{}, ErrNotReady
	}
	for _, p := range l.merged {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Product{}, ErrNotFound
}

// IsDefault reports whether id belongs to the bundled document.
func (l *Loader) IsDefault(id int64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, p := range l.defaults {
		if p.ID == id {
			return true
		}
	}
	return false
}
