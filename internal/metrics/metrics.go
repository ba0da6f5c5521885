// Package metrics defines Prometheus metrics for the inventory service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the service is live (1) or not (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the service is ready to serve appraisals (1) or not (0).",
	})
)

// Appraisal metrics.
var (
	AppraisalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appraisals_total",
		Help:      "Total number of appraisal requests by outcome.",
	}, []string{"outcome"})

	AppraisalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "appraisal_duration_seconds",
		Help:      "Duration of appraisal evaluations in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ConfidenceDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "appraisal_confidence_distribution",
		Help:      "Distribution of match confidence scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11), // 0.0, 0.1, ..., 1.0
	})
)

// Catalog metrics.
var (
	CatalogRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refreshes_total",
		Help:      "Total number of catalog refresh cycles.",
	})

	CatalogRefreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refresh_errors_total",
		Help:      "Total number of failed catalog refreshes.",
	})

	CatalogRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_rows",
		Help:      "Number of rows in the current catalog snapshot.",
	})
)

// Device lookup provider metrics.
var (
	LookupCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_calls_total",
		Help:      "Total cumulative device lookup API calls.",
	})

	LookupDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "lookup_daily_usage",
		Help:      "Current daily lookup call count within the rolling 24-hour window.",
	})

	LookupDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_daily_limit_hits_total",
		Help:      "Total number of times the daily lookup limit was reached.",
	})

	LookupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_errors_total",
		Help:      "Total number of failed device lookup calls.",
	})
)
