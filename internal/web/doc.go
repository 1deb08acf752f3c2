// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package web serves the server-rendered HTML interface: a movie tab that
// shows recommendations for a selected title and a genre tab that shows
// popular movies of a selected genre.
package web
