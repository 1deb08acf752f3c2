// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/middleware"
)

// ReadinessStatus is the payload of /api/v1/health/ready.
type ReadinessStatus struct {
	Ready        bool                   `json:"ready"`
	Version      string                 `json:"version,omitempty"`
	CatalogSize  int                    `json:"catalog_size"`
	MatrixDim    int                    `json:"matrix_dim"`
	TMDBEnabled  bool                   `json:"tmdb_enabled"`
	BreakerState string                 `json:"breaker_state,omitempty"`
	Caches       map[string]cache.Stats `json:"caches,omitempty"`
	Uptime       float64                `json:"uptime_seconds"`
}

// HealthLive is the liveness probe. It answers 200 whenever the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. The service is ready once an aligned
// catalog and matrix are loaded; TMDB being disabled or its breaker being
// open only degrades posters and genres, so it is reported but not required.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadinessStatus{
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		status.CatalogSize = h.catalog.Len()
	}
	if h.matrix != nil {
		status.MatrixDim = h.matrix.Dim()
	}
	if h.tmdb != nil {
		status.TMDBEnabled = h.tmdb.Enabled()
		if status.TMDBEnabled {
			status.BreakerState = h.tmdb.BreakerState()
			status.Caches = h.tmdb.CacheStats()
		}
	}
	status.Ready = catalog.CheckAligned(h.catalog, h.matrix) == nil

	rw := NewResponseWriter(w, r)
	if !status.Ready {
		rw.ServiceUnavailable("Catalog not loaded", status)
		return
	}
	rw.Success(status)
}

// PerformanceReport is the payload of /api/v1/health/performance.
type PerformanceReport struct {
	Samples   int                        `json:"samples"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
}

// Performance reports latency percentiles per route from recent requests.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(PerformanceReport{
		Samples:   h.perfMon.Len(),
		Endpoints: h.perfMon.Stats(),
	})
}
