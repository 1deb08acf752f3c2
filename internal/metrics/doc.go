// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics for ReelMatch.

Metrics are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8501/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendations and browsing:
  - recommendations_total{outcome}
  - recommendation_duration_seconds
  - genre_browse_total{genre, outcome}
  - catalog_movies

TMDB and outbound HTTP:
  - tmdb_requests_total{endpoint, outcome}
  - tmdb_request_duration_seconds{endpoint}
  - http_client_retries_total{client, reason}
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}

Caches:
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total {cache_type}

Artifacts:
  - artifact_downloads_total{artifact, result}
*/
package metrics
