package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabloomi/inventory/pkg/extract"
	domain "github.com/cabloomi/inventory/pkg/types"
)

type staticSource struct {
	cat     domain.Catalog
	err     error
	fetches atomic.Int64
}

func (s *staticSource) Fetch(context.Context) (domain.Catalog, error) {
	s.fetches.Add(1)
	if s.err != nil {
		return domain.Catalog{}, s.err
	}
	return s.cat, nil
}

type staticProvider struct {
	payload extract.Payload
	err     error
}

func (p *staticProvider) Lookup(context.Context, string) (extract.Payload, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.payload, nil
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Rows: []domain.CatalogRow{
			{Category: "iPhone Used Unlocked", DeviceLabel: "iPhone 15 Pro 128GB", PurchasePriceCents: 40000},
			{Category: "iPhone Used Unlocked", DeviceLabel: "iPhone 15 Pro 256GB", PurchasePriceCents: 45000},
			{Category: "Samsung Used", DeviceLabel: "Galaxy S24 Ultra 512GB", PurchasePriceCents: 38000},
		},
	}
}

func TestAppraiseMatchesCatalogRow(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{cat: testCatalog()})

	payload := extract.PayloadFromMap(map[string]string{
		"Carrier":  "Verizon",
		"SIM-Lock": "Unlocked",
	})

	got, err := eng.Appraise(context.Background(), AppraiseRequest{
		Description: "IPHONE 15 PRO 256GB",
		Payload:     payload,
	})
	require.NoError(t, err)

	require.NotNil(t, got.Match.Row)
	assert.Equal(t, "iPhone 15 Pro 256GB", got.Match.Row.DeviceLabel)
	assert.Equal(t, int64(45000), got.Match.PurchasePriceCents)
	assert.GreaterOrEqual(t, got.Match.Confidence, 0.5)
	assert.Equal(t, domain.BrandApple, got.Brand)
	assert.Equal(t, domain.ConditionUsed, got.Condition)
	assert.True(t, got.Carrier.Unlocked)
}

func TestAppraiseDescriptionFromPayload(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{cat: testCatalog()})

	payload := extract.Payload{
		{Key: "Model", Value: "iPhone 15 Pro 128GB"},
		{Key: "Carrier", Value: "Unlocked"},
	}

	got, err := eng.Appraise(context.Background(), AppraiseRequest{Payload: payload})
	require.NoError(t, err)

	assert.Equal(t, "iPhone 15 Pro 128GB", got.Description)
	require.NotNil(t, got.Match.Row)
	assert.Equal(t, "iPhone 15 Pro 128GB", got.Match.Row.DeviceLabel)
}

func TestAppraiseDefaultCarrier(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{cat: testCatalog()}, WithDefaultCarrier("Unlocked"))

	got, err := eng.Appraise(context.Background(), AppraiseRequest{
		Description: "iPhone 15 Pro 256GB",
	})
	require.NoError(t, err)

	assert.Equal(t, "Unlocked", got.Carrier.Carrier)
	assert.True(t, got.Carrier.Unlocked)
}

func TestAppraiseCatalogErrorPropagates(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{err: errors.New("upstream down")})

	_, err := eng.Appraise(context.Background(), AppraiseRequest{Description: "iPhone 15"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestCatalogCaching(t *testing.T) {
	t.Parallel()

	src := &staticSource{cat: testCatalog()}
	eng := NewEngine(src, WithCacheTTL(time.Minute))

	for i := 0; i < 3; i++ {
		_, err := eng.Appraise(context.Background(), AppraiseRequest{Description: "iPhone 15 Pro 256GB"})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), src.fetches.Load())

	_, err := eng.RefreshCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), src.fetches.Load())
}

func TestAppraiseByIMEI(t *testing.T) {
	t.Parallel()

	provider := &staticProvider{payload: extract.Payload{
		{Key: "Model", Value: "iPhone 15 Pro 256GB"},
		{Key: "Carrier", Value: "Unlocked"},
	}}
	eng := NewEngine(&staticSource{cat: testCatalog()}, WithProvider(provider))

	got, err := eng.AppraiseByIMEI(context.Background(), "356728115997001", domain.ConditionUsed)
	require.NoError(t, err)
	require.NotNil(t, got.Match.Row)
	assert.Equal(t, "iPhone 15 Pro 256GB", got.Match.Row.DeviceLabel)
}

func TestAppraiseByIMEINoProvider(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{cat: testCatalog()})

	_, err := eng.AppraiseByIMEI(context.Background(), "356728115997001", domain.ConditionUsed)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestAppraiseByIMEIProviderError(t *testing.T) {
	t.Parallel()

	provider := &staticProvider{err: errors.New("quota exceeded")}
	eng := NewEngine(&staticSource{cat: testCatalog()}, WithProvider(provider))

	_, err := eng.AppraiseByIMEI(context.Background(), "356728115997001", domain.ConditionUsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAppraiseBatchPreservesOrder(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{cat: testCatalog()}, WithBatchConcurrency(2))

	reqs := []AppraiseRequest{
		{Description: "iPhone 15 Pro 128GB"},
		{Description: "Galaxy S24 Ultra 512GB"},
		{Description: "iPhone 15 Pro 256GB"},
	}

	items, err := eng.AppraiseBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, item := range items {
		assert.Equal(t, i, item.Index)
		require.NoError(t, item.Err)
		require.NotNil(t, item.Appraisal.Match.Row)
	}
	assert.Equal(t, "Galaxy S24 Ultra 512GB", items[1].Appraisal.Match.Row.DeviceLabel)
}

func TestAppraiseBatchContextCancel(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&staticSource{cat: testCatalog()}, WithPaceDelay(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.AppraiseBatch(ctx, []AppraiseRequest{{Description: "iPhone 15"}})
	assert.ErrorIs(t, err, context.Canceled)
}
