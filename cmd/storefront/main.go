package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/internal/kv"
	"Storefront/internal/shop"
	"Storefront/pkg/kit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := kit.NewLogger(cfg.Service, cfg.Debug)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := shop.New(ctx, shop.Deps{
		Store:         store,
		Source:        catalogSource(cfg),
		ConfirmPhrase: cfg.ConfirmPhrase,
		Log:           log,
		Registry:      reg,
	})

	// requests are served while the catalog loads
	go func() { _ = s.LoadCatalog(ctx) }()

	h := shop.NewHandler(&shop.Server{Shop: s, Log: log}, shop.HTTPDeps{
		Log:             log,
		Service:         cfg.Service,
		Registry:        reg,
		MetricsEnabled:  cfg.MetricsToken != "",
		MetricsToken:    cfg.MetricsToken,
		GateLimitPerMin: cfg.GateLimitPerMin,
	})

	closeStore := func(context.Context) error { return store.Close() }
	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log, closeStore); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return kv.NewMemStore(), nil
	case config.StorePostgres:
		return kv.OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return kv.OpenBoltStore(cfg.StorePath)
	}
}

func catalogSource(cfg config.Config) catalog.Source {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		return catalog.FileSource{Path: cfg.CatalogPath}
	case config.CatalogHTTP:
		return catalog.NewHTTPSource(cfg.CatalogURL)
	default:
		return catalog.EmbeddedSource{}
	}
}
