// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the ReelMatch server.
//
// ReelMatch recommends movies from a precomputed similarity matrix and lets
// visitors browse TMDB by genre. The server exposes a JSON API under /api/v1,
// an HTML page at / and Prometheus metrics at /metrics.
//
// # Startup
//
//  1. Configuration: struct defaults, then config.yaml, then environment (Koanf v2)
//  2. Artifacts: download the catalog and similarity files when missing, then load them
//  3. TMDB client: enabled only when TMDB_API_KEY is set
//  4. Supervisor tree: cache janitor (maintenance layer) and HTTP server (API layer)
//
// Failing to load either artifact is fatal. A missing TMDB key is not: the
// page and API still recommend, without posters and without genre browsing.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
// connections and drains in-flight requests within SHUTDOWN_TIMEOUT.
//
// # Example Usage
//
//	export TMDB_API_KEY=your-tmdb-key
//	export CATALOG_PATH=data/movies.json
//	export SIMILARITY_PATH=data/similarity.arrow
//	./reelmatch
//
// The server listens on port 8501 unless HTTP_PORT says otherwise.
package main
