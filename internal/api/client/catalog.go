package client

import (
	"context"
	"time"
)

// CatalogStatus describes the server's current catalog snapshot.
type CatalogStatus struct {
	Rows        int       `json:"rows"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// CatalogStatus returns the current catalog snapshot status.
func (c *Client) CatalogStatus(ctx context.Context) (*CatalogStatus, error) {
	var out CatalogStatus
	if err := c.get(ctx, "/api/v1/catalog", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshCatalog forces the server to fetch a fresh catalog snapshot.
func (c *Client) RefreshCatalog(ctx context.Context) (*CatalogStatus, error) {
	var out CatalogStatus
	if err := c.post(ctx, "/api/v1/catalog/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
