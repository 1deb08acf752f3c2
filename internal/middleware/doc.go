// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides the HTTP middleware used by the API router.

All middleware has the chi signature func(http.Handler) http.Handler.

  - RequestID: X-Request-ID propagation plus request and correlation ids in the logging context
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and api_active_requests
  - Compression: gzip for clients sending Accept-Encoding: gzip
  - PerformanceMonitor: in-memory latency percentiles per route, with slow request logging

Metric and monitor labels use the chi route pattern, so
/api/v1/genres/{genre}/movies is one series regardless of the genre requested.

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.Compression)
*/
package middleware
