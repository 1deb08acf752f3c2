// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for ReelMatch.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/reelmatch/config.yaml
  - Environment variables, through an explicit name mapping

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown timeout (default: 10s)

Security:
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 120)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable request throttling (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Artifacts:
  - CATALOG_PATH: Movie catalog JSON (default: data/movies.json)
  - SIMILARITY_PATH: Similarity matrix, .json or .arrow (default: data/similarity.arrow)
  - CATALOG_URL / SIMILARITY_URL: Download source when the file is absent
  - CATALOG_DRIVE_ID / SIMILARITY_DRIVE_ID: Google Drive file ids, used when no URL is set

TMDB:
  - TMDB_API_KEY: Personal API key; posters and genre browsing are disabled without it
  - TMDB_TIMEOUT: Per-attempt timeout (default: 8s)
  - TMDB_MAX_ATTEMPTS: Attempts per request including the first (default: 3)
  - TMDB_POSTER_CACHE_TTL: Poster cache TTL (default: 24h)
  - TMDB_GENRE_CACHE_TTL: Genre page cache TTL (default: 6h)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Recommendation:
  - RECOMMEND_TOP_K: Default result size (default: 5)
  - RECOMMEND_MAX_K: Largest accepted result size (default: 50)

Example config.yaml:

	server:
	  port: 8501
	tmdb:
	  api_key: "your-key"
	artifacts:
	  catalog_path: /data/movies.json
	  similarity_path: /data/similarity.arrow
*/
package config
