package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// CatalogHandler exposes catalog snapshot status and manual refresh.
type CatalogHandler struct {
	engine CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(eng CatalogService) *CatalogHandler {
	return &CatalogHandler{engine: eng}
}

// CatalogStatusOutput describes the current catalog snapshot.
type CatalogStatusOutput struct {
	Body struct {
		Rows        int       `json:"rows" doc:"Number of rows in the current snapshot"`
		RefreshedAt time.Time `json:"refreshed_at" doc:"When the snapshot was fetched"`
	}
}

// Status reports the current catalog snapshot.
func (h *CatalogHandler) Status(ctx context.Context, _ *struct{}) (*CatalogStatusOutput, error) {
	cat, err := h.engine.Catalog(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("catalog unavailable: " + err.Error())
	}

	out := &CatalogStatusOutput{}
	out.Body.Rows = len(cat.Rows)
	out.Body.RefreshedAt = cat.RefreshedAt
	return out, nil
}

// Refresh forces a catalog fetch, bypassing the cache.
func (h *CatalogHandler) Refresh(ctx context.Context, _ *struct{}) (*CatalogStatusOutput, error) {
	cat, err := h.engine.RefreshCatalog(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("catalog refresh failed: " + err.Error())
	}

	out := &CatalogStatusOutput{}
	out.Body.Rows = len(cat.Rows)
	out.Body.RefreshedAt = cat.RefreshedAt
	return out, nil
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "catalog-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Catalog snapshot status",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadGateway},
	}, h.Status)

	huma.Register(api, huma.Operation{
		OperationID: "catalog-refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/refresh",
		Summary:     "Refresh the catalog snapshot",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadGateway},
	}, h.Refresh)
}
