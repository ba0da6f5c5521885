package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	domain "github.com/cabloomi/inventory/pkg/types"
)

// Source produces a fresh catalog snapshot.
type Source interface {
	Fetch(ctx context.Context) (domain.Catalog, error)
}

// HTTPSource downloads the delimited catalog export from a fixed URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.httpClient = c
	}
}

// NewHTTPSource creates a source reading from url.
func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and parses the catalog.
func (s *HTTPSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Catalog{}, fmt.Errorf("fetching catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("reading catalog body: %w", err)
	}

	return Parse(string(body)), nil
}

// FileSource reads the catalog from a local file, useful for offline runs
// and the CLI.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and parses the catalog file.
func (s *FileSource) Fetch(_ context.Context) (domain.Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(string(raw)), nil
}
