// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package artifacts bootstraps the catalog and similarity files.
//
// Files already on disk are used as-is. Missing files are downloaded once from
// a configured URL or Google Drive file id, through the retrying HTTP client,
// and written atomically (temp file plus rename).
package artifacts
