package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Source yields the read-only default product document.
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
	String() string
}

//go:embed data/products.json
var bundledProducts []byte

// EmbeddedSource serves the products.json compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Fetch(context.Context) ([]Product, error) {
	return decodeProducts(bytes.NewReader(bundledProducts))
}

func (EmbeddedSource) String() string { return "embedded:products.json" }

type FileSource struct {
	Path string
}

func (s FileSource) Fetch(context.Context) ([]Product, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeProducts(f)
}

func (s FileSource) String() string { return "file:" + s.Path }

const maxCatalogBytes = 8 << 20

// HTTPSource fetches the document from a static URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(rawURL string) *HTTPSource {
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" && u.Host != "" {
		rawURL = strings.TrimRight(rawURL, "/")
	}
	return &HTTPSource{
		URL:    rawURL,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", errBadStatus, resp.StatusCode)
	}

	return decodeProducts(io.LimitReader(resp.Body, maxCatalogBytes))
}

func (s *HTTPSource) String() string { return s.URL }

func decodeProducts(r io.Reader) ([]Product, error) {
	var ps []Product
	if err := json.NewDecoder(r).Decode(&ps); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if ps == nil {
		ps = []Product{}
	}
	return ps, nil
}
