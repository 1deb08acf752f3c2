// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "ok", "no_match"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to rank one similarity row, excluding poster enrichment",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		},
	)

	GenreBrowseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genre_browse_total",
			Help: "Total number of genre browse queries by outcome",
		},
		[]string{"genre", "outcome"}, // outcome: "ok", "empty"
	)

	// Catalog Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	ArtifactDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_downloads_total",
			Help: "Total number of artifact bootstrap downloads",
		},
		[]string{"artifact", "result"}, // result: "success", "failure"
	)

	// TMDB Client Metrics
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDB API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // outcome: "ok", "not_found", "error", "rejected"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "TMDB API call duration in seconds, including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
		[]string{"endpoint"},
	)

	OutboundRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_retries_total",
			Help: "Total number of outbound HTTP retries",
		},
		[]string{"client", "reason"}, // reason: "status", "transport"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "poster", "discover"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache entries removed by TTL sweeps",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the API rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetCatalogSize publishes the number of loaded movies.
func SetCatalogSize(n int) {
	CatalogMovies.Set(float64(n))
}

// RecordRecommendation records one ranking pass.
func RecordRecommendation(found bool, duration time.Duration) {
	outcome := "ok"
	if !found {
		outcome = "no_match"
	}
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordGenreBrowse records one genre browse.
func RecordGenreBrowse(genre string, items int) {
	outcome := "ok"
	if items == 0 {
		outcome = "empty"
	}
	GenreBrowseTotal.WithLabelValues(genre, outcome).Inc()
}

// RecordTMDBRequest records a TMDB call and its outcome.
func RecordTMDBRequest(endpoint, outcome string, duration time.Duration) {
	TMDBRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	TMDBRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordRetry records an outbound retry.
func RecordRetry(client, reason string) {
	OutboundRetries.WithLabelValues(client, reason).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordCacheSweep records the outcome of a TTL sweep.
func RecordCacheSweep(cacheType string, removed, size int) {
	if removed > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(removed))
	}
	CacheSize.WithLabelValues(cacheType).Set(float64(size))
}

// RecordArtifactDownload records an artifact bootstrap attempt.
func RecordArtifactDownload(artifact string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ArtifactDownloads.WithLabelValues(artifact, result).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// TrackUptime updates AppUptime relative to start.
func TrackUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
