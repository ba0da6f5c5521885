package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cabloomi/inventory/internal/api/handlers"
	"github.com/cabloomi/inventory/internal/api/middleware"
	"github.com/cabloomi/inventory/internal/catalog"
	"github.com/cabloomi/inventory/internal/config"
	"github.com/cabloomi/inventory/internal/engine"
	"github.com/cabloomi/inventory/internal/lookup"
	"github.com/cabloomi/inventory/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and catalog refresh scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	eng := buildEngine(cfg, log)

	sched, err := engine.NewScheduler(eng, cfg.Catalog.RefreshInterval, log)
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(eng)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Inventory API", Version))
	handlers.RegisterAppraiseRoutes(api, handlers.NewAppraiseHandler(eng))
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(eng))

	// Warm the catalog before accepting traffic; a failure here is not
	// fatal, readyz stays down until the first successful refresh.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := eng.RefreshCatalog(warmCtx); err != nil {
		log.Warn("initial catalog fetch failed", "error", err)
	}
	warmCancel()

	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	stopCtx := sched.Stop()
	<-stopCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func buildEngine(cfg *config.Config, log *slog.Logger) *engine.Engine {
	var source catalog.Source
	if cfg.Catalog.Path != "" {
		source = catalog.NewFileSource(cfg.Catalog.Path)
	} else {
		source = catalog.NewHTTPSource(cfg.Catalog.URL)
	}

	opts := []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithCacheTTL(cfg.Catalog.CacheTTL),
		engine.WithBatchConcurrency(cfg.Batch.Concurrency),
		engine.WithPaceDelay(cfg.Batch.PaceDelay),
		engine.WithSignatureBounds(cfg.Matching.MinGeneration, cfg.Matching.MaxGeneration),
	}
	if cfg.Matching.DefaultCarrier != "" {
		opts = append(opts, engine.WithDefaultCarrier(cfg.Matching.DefaultCarrier))
	}

	if cfg.Lookup.BaseURL != "" {
		limiter := lookup.NewRateLimiter(
			cfg.Lookup.RateLimit.PerSecond,
			cfg.Lookup.RateLimit.Burst,
			cfg.Lookup.RateLimit.DailyLimit,
		)
		provider := lookup.NewClient(
			cfg.Lookup.BaseURL,
			cfg.Lookup.APIKey,
			lookup.WithClientHTTPClient(&http.Client{Timeout: cfg.Lookup.Timeout}),
			lookup.WithClientRateLimiter(limiter),
		)
		opts = append(opts, engine.WithProvider(provider))
		log.Info("lookup provider configured", "base_url", cfg.Lookup.BaseURL)
	}

	return engine.NewEngine(source, opts...)
}
