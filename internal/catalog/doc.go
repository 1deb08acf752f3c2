// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package catalog holds the two precomputed artifacts ReelMatch serves from:
the ordered movie catalog and the dense item-item similarity matrix.

Both are loaded once at startup and never mutated, so they are shared by
all requests without locking. Position i in the catalog is row and column i
of the matrix; Load refuses artifacts that disagree on size.

# Artifact Formats

Catalog (.json), either shape:

	[{"title": "Avatar", "movie_id": 19995}, ...]
	{"title": {"0": "Avatar"}, "movie_id": {"0": 19995}}

Similarity (.json or .arrow):

	[[1.0, 0.21], [0.21, 1.0]]

The Arrow IPC form stores one row per record in a column named "scores" of
type fixed_size_list<float32|float64>[N]. WriteSimilarityArrow produces it.

All content errors wrap ErrInvalidArtifact. Missing files surface the
underlying os error, so errors.Is(err, fs.ErrNotExist) works.
*/
package catalog
