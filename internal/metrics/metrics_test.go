package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, AppraisalsTotal)
	assert.NotNil(t, AppraisalDuration)
	assert.NotNil(t, ConfidenceDistribution)
	assert.NotNil(t, CatalogRefreshesTotal)
	assert.NotNil(t, CatalogRefreshErrorsTotal)
	assert.NotNil(t, CatalogRows)
	assert.NotNil(t, LookupCallsTotal)
	assert.NotNil(t, LookupDailyUsage)
	assert.NotNil(t, LookupDailyLimitHits)
	assert.NotNil(t, LookupErrorsTotal)
}
