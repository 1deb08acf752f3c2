// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package app assembles ReelMatch from configuration: it makes sure the
// catalog and similarity artifacts exist locally, loads them, and builds the
// TMDB client, recommender and genre browser shared by cmd/server and
// cmd/reelctl.
package app
