package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"

	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogHTTP     = "http"
)

type Config struct {
	Service string
	Port    string
	Debug   bool

	StoreDriver string
	StorePath   string
	DatabaseURL string

	CatalogSource string
	CatalogPath   string
	CatalogURL    string

	// ConfirmPhrase is what the admin page asks for before a change. It is a
	// confirm-action prompt, not a credential.
	ConfirmPhrase   string
	GateLimitPerMin int

	MetricsToken string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	c := Config{
		Service:         getenv("SERVICE_NAME", "storefront"),
		Port:            getenv("PORT", "8080"),
		Debug:           getenv("DEBUG", "") == "1",
		StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", StoreBolt)),
		StorePath:       getenv("STORE_PATH", "storefront.db"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CatalogSource:   strings.ToLower(getenv("CATALOG_SOURCE", CatalogEmbedded)),
		CatalogPath:     getenv("CATALOG_PATH", "products.json"),
		CatalogURL:      os.Getenv("CATALOG_URL"),
		ConfirmPhrase:   getenv("ADMIN_CONFIRM_PHRASE", "confirm"),
		GateLimitPerMin: 10,
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
	}

	if v := os.Getenv("GATE_LIMIT_PER_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("GATE_LIMIT_PER_MIN: %w", err)
		}
		c.GateLimitPerMin = n
	}

	return c, c.validate()
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreBolt:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.CatalogSource {
	case CatalogEmbedded, CatalogFile:
	case CatalogHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL is required for CATALOG_SOURCE=%s", CatalogHTTP)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
