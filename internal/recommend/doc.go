// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend ranks movies by a precomputed content-similarity matrix.
//
// # Ranking
//
// Recommend looks up the selected title in the catalog, pairs every movie with
// its score in the selected row, and stable-sorts by descending score. Ties keep
// catalog order, so identical inputs always produce identical output. The
// selected movie itself is skipped and at most K results are returned, where K
// defaults to DefaultK.
//
// # Usage
//
//	rec, err := recommend.NewRecommender(cat, sim, recommend.DefaultK)
//	if err != nil {
//	    return err
//	}
//	svc := recommend.NewService(rec, tmdbClient)
//	result := svc.Recommend(ctx, "Avatar", 0)
//
// # Thread Safety
//
// Recommender and Service hold only immutable data and are safe for
// concurrent use.
package recommend
