// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides centralized zerolog-based structured logging for ReelMatch.
//
// A single global logger is configured once from main via Init and is used by
// every package through the level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("movies", n).Msg("Catalog loaded")
//	logging.Warn().Err(err).Int("tmdb_id", id).Msg("Poster lookup failed")
//
// # Request Context
//
// HTTP middleware stores a request ID and a short correlation ID in the
// request context. Ctx returns a logger that carries both fields:
//
//	logging.Ctx(r.Context()).Info().Str("title", title).Msg("Recommendation served")
//
// # Supervisor Integration
//
// NewSlogLogger bridges zerolog to log/slog so that sutureslog can report
// supervisor events through the same output.
//
// # Configuration
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
//
// Always terminate log chains with .Msg() or .Send(), otherwise nothing is emitted.
package logging
