// Package handlers implements HTTP handlers for the inventory API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	domain "github.com/cabloomi/inventory/pkg/types"
)

// CatalogService is the engine surface the health and catalog handlers need.
type CatalogService interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
	RefreshCatalog(ctx context.Context) (domain.Catalog, error)
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	engine CatalogService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(eng CatalogService) *HealthHandler {
	return &HealthHandler{engine: eng}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if a catalog snapshot is available, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, err := h.engine.Catalog(c.Request().Context()); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			ErrorResponse{Error: "catalog unavailable"},
		)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
