// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package genre holds the fixed TMDB genre table and a browser that lists
// the most popular movies of a genre.
package genre
