// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// DefaultK is the number of recommendations returned when k <= 0.
const DefaultK = 5

// Recommendation is one ranked movie.
type Recommendation struct {
	Index      int     `json:"index"`
	Title      string  `json:"title"`
	ExternalID int     `json:"movie_id"`
	Score      float64 `json:"score"`
}

type scored struct {
	index int
	score float64
}

// Recommend returns the k movies most similar to selected.
//
// The similarity row of the selected movie is stable-sorted by descending
// score, so equal scores keep ascending catalog order. The selected movie is
// dropped and the first k remaining entries are returned. An unknown title
// yields nil. Inputs are never modified.
func Recommend(selected string, cat *catalog.Catalog, sim *catalog.SimilarityMatrix, k int) []Recommendation {
	if cat == nil || sim == nil {
		return nil
	}
	if k <= 0 {
		k = DefaultK
	}

	i, ok := cat.IndexOf(selected)
	if !ok || i >= sim.Dim() {
		return nil
	}

	n := sim.Dim()
	row := make([]scored, n)
	for j := 0; j < n; j++ {
		row[j] = scored{index: j, score: sim.Score(i, j)}
	}

	sort.SliceStable(row, func(a, b int) bool {
		return row[a].score > row[b].score
	})

	limit := k
	if limit > n-1 {
		limit = n - 1
	}
	out := make([]Recommendation, 0, limit)
	for _, s := range row {
		if len(out) == limit {
			break
		}
		if s.index == i {
			continue
		}
		rec := cat.At(s.index)
		out = append(out, Recommendation{
			Index:      s.index,
			Title:      rec.Title,
			ExternalID: rec.ExternalID,
			Score:      s.score,
		})
	}
	return out
}

// Recommender binds a catalog and its similarity matrix.
// It is immutable and safe for concurrent use.
type Recommender struct {
	cat *catalog.Catalog
	sim *catalog.SimilarityMatrix
	k   int
}

// NewRecommender checks that cat and sim are aligned.
func NewRecommender(cat *catalog.Catalog, sim *catalog.SimilarityMatrix, k int) (*Recommender, error) {
	if err := catalog.CheckAligned(cat, sim); err != nil {
		return nil, fmt.Errorf("new recommender: %w", err)
	}
	if k <= 0 {
		k = DefaultK
	}
	return &Recommender{cat: cat, sim: sim, k: k}, nil
}

// Recommend ranks with the recommender's default k.
func (r *Recommender) Recommend(title string) []Recommendation {
	return Recommend(title, r.cat, r.sim, r.k)
}

// RecommendK ranks with an explicit k; k <= 0 falls back to the default.
func (r *Recommender) RecommendK(title string, k int) []Recommendation {
	if k <= 0 {
		k = r.k
	}
	return Recommend(title, r.cat, r.sim, k)
}

// K returns the default number of recommendations.
func (r *Recommender) K() int {
	return r.k
}

// Catalog returns the bound catalog.
func (r *Recommender) Catalog() *catalog.Catalog {
	return r.cat
}

// Matrix returns the bound similarity matrix.
func (r *Recommender) Matrix() *catalog.SimilarityMatrix {
	return r.sim
}
