package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("device,price\niPhone 15 128GB,$350.00\n"))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, WithHTTPClient(srv.Client()))

	cat, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Rows, 1)
	assert.Equal(t, "iPhone 15 128GB", cat.Rows[0].DeviceLabel)
	assert.Equal(t, int64(35000), cat.Rows[0].PurchasePriceCents)
}

func TestHTTPSourceFetchNonOK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, WithHTTPClient(srv.Client()))

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestFileSourceFetch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("device,price\nGalaxy S23,20000\n"), 0o644))

	cat, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Rows, 1)
	assert.Equal(t, "Galaxy S23", cat.Rows[0].DeviceLabel)
}

func TestFileSourceFetchMissing(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.csv")).Fetch(context.Background())
	require.Error(t, err)
}
