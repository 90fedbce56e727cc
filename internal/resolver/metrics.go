package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bomator",
			Name:      "resolutions_total",
			Help:      "Total item resolutions by final link status and winning tier",
		},
		[]string{"status", "tier"},
	)

	catalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bomator",
			Name:      "catalog_queries_total",
			Help:      "Total catalog part-search queries",
		},
		[]string{"status"},
	)

	catalogBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bomator",
			Name:      "catalog_batch_duration_seconds",
			Help:      "Duration of catalog resolution batches in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s to ~64s
		},
	)

	tokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bomator",
			Name:      "catalog_token_refresh_total",
			Help:      "Total catalog bearer token fetches",
		},
		[]string{"status"},
	)

	probesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bomator",
			Name:      "probes_total",
			Help:      "Total URL reachability probes",
		},
		[]string{"method", "status"},
	)

	searchFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bomator",
			Name:      "search_fallback_total",
			Help:      "Total web-search fallback attempts",
		},
		[]string{"status"},
	)

	priceScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bomator",
			Name:      "price_scrapes_total",
			Help:      "Total product page price extraction attempts",
		},
		[]string{"status"},
	)
)
