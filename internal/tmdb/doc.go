// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package tmdb is a small client for The Movie Database v3 API.

It resolves poster URLs for movie ids and lists popular movies per genre
through /discover/movie. Every call goes through:

  - a token-bucket rate limiter (golang.org/x/time/rate)
  - a circuit breaker (sony/gobreaker/v2) named "tmdb-api"
  - the retrying HTTP client from internal/httpclient

Answers are cached in TTL-bounded LRU caches. Transport failures, exhausted
retries and open-circuit rejections are returned as errors and never cached,
so callers degrade to "no poster" or an empty page and try again later.

A client built without an API key is disabled: Enabled reports false and every
lookup returns ErrDisabled without network I/O.
*/
package tmdb
