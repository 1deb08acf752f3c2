// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for the server's
long-running components.

HTTPServerService translates http.Server's blocking ListenAndServe into
suture's context-aware Serve, with graceful shutdown on cancellation.

JanitorService sweeps TTL-expired entries from the TMDB poster and discover
caches on a fixed interval.

Every wrapper implements fmt.Stringer so suture can name it in logs.
*/
package services
