// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP REST API layer for ReelMatch.

Routes are served by a chi router. Every JSON response uses one envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

and failures carry an error object instead of data:

	{
	  "success": false,
	  "error": {"code": "VALIDATION_ERROR", "message": "title is required", "request_id": "..."},
	  "meta": {...}
	}

Endpoints:

  - GET /api/v1/health/live: liveness, always 200
  - GET /api/v1/health/ready: catalog and TMDB status
  - GET /api/v1/health/performance: per-route latency percentiles
  - GET /api/v1/movies: catalog titles, optional prefix autocomplete
  - GET /api/v1/recommendations: top-K similar movies with posters
  - GET /api/v1/genres: the fixed genre table
  - GET /api/v1/genres/{genre}/movies: popular movies of one genre
  - GET /metrics: Prometheus exposition

Middleware order: request id, real IP, recoverer, CORS, compression,
then per-IP rate limiting, security headers, Prometheus and latency sampling
on the API routes.

Recommendation and genre results are never errors: an unknown title or a
TMDB outage produces an empty item list with a notice, returned with 200.
*/
package api
