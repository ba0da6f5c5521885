// Package engine orchestrates catalog ingestion, device lookup, and
// appraisal matching.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cabloomi/inventory/internal/cache"
	"github.com/cabloomi/inventory/internal/catalog"
	"github.com/cabloomi/inventory/internal/lookup"
	"github.com/cabloomi/inventory/internal/metrics"
	"github.com/cabloomi/inventory/pkg/extract"
	"github.com/cabloomi/inventory/pkg/matcher"
	domain "github.com/cabloomi/inventory/pkg/types"
)

// ErrNoProvider is returned by AppraiseByIMEI when no lookup provider is configured.
var ErrNoProvider = errors.New("no lookup provider configured")

const (
	catalogCacheKey         = "catalog"
	defaultCatalogCacheTTL  = 5 * time.Minute
	defaultBatchConcurrency = 5
)

// Payload keys tried, in order, when a request carries no explicit
// description.
var descriptionKeys = []string{"model", "device", "description", "name", "product"}

// Engine evaluates appraisal requests against the current catalog snapshot.
type Engine struct {
	source   catalog.Source
	provider lookup.Provider
	matcher  *matcher.Matcher
	extr     *extract.SignatureExtractor
	log      *slog.Logger

	catalogCache *cache.TTL[string, domain.Catalog]
	cacheTTL     time.Duration

	defaultCarrier   string
	batchConcurrency int
	paceDelay        time.Duration
}

// NewEngine creates an Engine reading catalog snapshots from source.
func NewEngine(source catalog.Source, opts ...EngineOption) *Engine {
	eng := &Engine{
		source:           source,
		extr:             extract.NewSignatureExtractor(),
		log:              slog.Default(),
		cacheTTL:         defaultCatalogCacheTTL,
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.matcher == nil {
		eng.matcher = matcher.New(eng.extr)
	}
	eng.catalogCache = cache.New[string, domain.Catalog](eng.cacheTTL)
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithProvider sets the device lookup provider used by AppraiseByIMEI.
func WithProvider(p lookup.Provider) EngineOption {
	return func(e *Engine) {
		e.provider = p
	}
}

// WithCacheTTL sets how long a fetched catalog snapshot is reused before
// the next lazy refresh.
func WithCacheTTL(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.cacheTTL = d
	}
}

// WithDefaultCarrier sets the carrier assumed when the payload reports none.
func WithDefaultCarrier(carrier string) EngineOption {
	return func(e *Engine) {
		e.defaultCarrier = carrier
	}
}

// WithBatchConcurrency caps the number of appraisals evaluated in parallel
// by AppraiseBatch.
func WithBatchConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.batchConcurrency = n
		}
	}
}

// WithPaceDelay inserts a delay before each batch item, pacing calls to the
// lookup provider.
func WithPaceDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.paceDelay = d
	}
}

// WithSignatureBounds sets the accepted device generation range.
func WithSignatureBounds(minGen, maxGen int) EngineOption {
	return func(e *Engine) {
		e.extr = extract.NewSignatureExtractor(extract.WithGenerationBounds(minGen, maxGen))
		e.matcher = matcher.New(e.extr)
	}
}

// Catalog returns the current catalog snapshot, fetching a fresh one when
// the cached copy has expired.
func (eng *Engine) Catalog(ctx context.Context) (domain.Catalog, error) {
	if cat, ok := eng.catalogCache.Lookup(catalogCacheKey); ok {
		return cat, nil
	}
	return eng.RefreshCatalog(ctx)
}

// RefreshCatalog fetches a fresh catalog snapshot, bypassing the cache.
func (eng *Engine) RefreshCatalog(ctx context.Context) (domain.Catalog, error) {
	metrics.CatalogRefreshesTotal.Inc()

	cat, err := eng.source.Fetch(ctx)
	if err != nil {
		metrics.CatalogRefreshErrorsTotal.Inc()
		return domain.Catalog{}, fmt.Errorf("refreshing catalog: %w", err)
	}

	metrics.CatalogRows.Set(float64(len(cat.Rows)))
	eng.catalogCache.Set(catalogCacheKey, cat)

	eng.log.Info("catalog refreshed", "rows", len(cat.Rows))
	return cat, nil
}

// AppraiseRequest is one device appraisal request. Description is optional
// when the payload carries a usable model field.
type AppraiseRequest struct {
	Description string
	Payload     extract.Payload
	Condition   domain.Condition
}

// Appraisal is the outcome of evaluating one appraisal request.
type Appraisal struct {
	Description string
	Brand       domain.Brand
	Condition   domain.Condition
	Signature   domain.DeviceSignature
	Carrier     domain.CarrierInfo
	Match       domain.MatchResult
}

// Appraise evaluates a single request against the current catalog.
func (eng *Engine) Appraise(ctx context.Context, req AppraiseRequest) (Appraisal, error) {
	start := time.Now()
	defer func() {
		metrics.AppraisalDuration.Observe(time.Since(start).Seconds())
	}()

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = descriptionFromPayload(req.Payload)
	}

	cond := req.Condition
	if cond == "" {
		cond = domain.ConditionUsed
	}

	carrier := extract.InferCarrier(req.Payload)
	if carrier.Carrier == "" && eng.defaultCarrier != "" {
		carrier.Carrier = eng.defaultCarrier
		if strings.EqualFold(eng.defaultCarrier, "unlocked") {
			carrier.Unlocked = true
		}
	}

	cat, err := eng.Catalog(ctx)
	if err != nil {
		metrics.AppraisalsTotal.WithLabelValues("error").Inc()
		return Appraisal{}, err
	}

	brand := extract.InferBrand(desc)
	sig := eng.extr.Extract(desc)

	candidates := matcher.Candidates(cat, brand, cond, carrier.Unlocked)
	match := eng.matcher.Match(matcher.Query{
		Description: desc,
		Signature:   sig,
		Brand:       brand,
		Condition:   cond,
		Carrier:     carrier,
	}, candidates)

	outcome := "matched"
	if match.Row == nil {
		outcome = "unmatched"
	}
	metrics.AppraisalsTotal.WithLabelValues(outcome).Inc()
	metrics.ConfidenceDistribution.Observe(match.Confidence)

	eng.log.Debug("appraisal evaluated",
		"description", desc,
		"brand", brand,
		"carrier", carrier.Carrier,
		"outcome", outcome,
		"confidence", match.Confidence,
	)

	return Appraisal{
		Description: desc,
		Brand:       brand,
		Condition:   cond,
		Signature:   sig,
		Carrier:     carrier,
		Match:       match,
	}, nil
}

// AppraiseByIMEI resolves the device payload through the lookup provider
// before appraising.
func (eng *Engine) AppraiseByIMEI(
	ctx context.Context,
	imei string,
	cond domain.Condition,
) (Appraisal, error) {
	if eng.provider == nil {
		return Appraisal{}, ErrNoProvider
	}

	payload, err := eng.provider.Lookup(ctx, imei)
	if err != nil {
		metrics.AppraisalsTotal.WithLabelValues("error").Inc()
		return Appraisal{}, fmt.Errorf("looking up device %s: %w", imei, err)
	}

	return eng.Appraise(ctx, AppraiseRequest{Payload: payload, Condition: cond})
}

// BatchItem pairs one batch request with its result or error. Index refers
// to the position in the submitted request slice.
type BatchItem struct {
	Index     int
	Appraisal Appraisal
	Err       error
}

// AppraiseBatch evaluates requests with bounded concurrency, preserving
// input order in the returned slice. Individual failures are reported per
// item; the batch itself only fails when the context is canceled.
func (eng *Engine) AppraiseBatch(
	ctx context.Context,
	reqs []AppraiseRequest,
) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))
	sem := make(chan struct{}, eng.batchConcurrency)
	done := make(chan int, len(reqs))

	for i, req := range reqs {
		if eng.paceDelay > 0 {
			select {
			case <-time.After(eng.paceDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		go func(i int, req AppraiseRequest) {
			defer func() { <-sem }()

			appraisal, err := eng.Appraise(ctx, req)
			items[i] = BatchItem{Index: i, Appraisal: appraisal, Err: err}
			done <- i
		}(i, req)
	}

	for range reqs {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return items, nil
}

func descriptionFromPayload(p extract.Payload) string {
	for _, key := range descriptionKeys {
		if v, ok := p.Get(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
