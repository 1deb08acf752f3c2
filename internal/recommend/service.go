// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// NoticeNoRecommendations is shown when the title is unknown or the catalog has one movie.
const NoticeNoRecommendations = "No recommendations found."

// PosterSource resolves poster URLs for TMDB ids.
type PosterSource interface {
	Enabled() bool
	PosterURL(ctx context.Context, id int) (string, error)
}

// Item is a recommendation enriched for display.
type Item struct {
	Recommendation
	PosterURL string `json:"poster_url,omitempty"`
	DetailURL string `json:"detail_url,omitempty"`
}

// Result is the outcome of one recommendation query.
// An empty Items always carries a Notice; it is never an error.
type Result struct {
	Query  string `json:"query"`
	Items  []Item `json:"items"`
	Notice string `json:"notice,omitempty"`
}

// Service ranks movies and attaches posters.
type Service struct {
	rec     *Recommender
	posters PosterSource
}

// NewService creates a Service. posters may be nil, in which case results
// carry no poster URLs.
func NewService(rec *Recommender, posters PosterSource) *Service {
	return &Service{rec: rec, posters: posters}
}

// Recommender returns the underlying ranker.
func (s *Service) Recommender() *Recommender {
	return s.rec
}

// Recommend ranks the k movies most similar to title and looks up a poster
// for each. Poster failures leave PosterURL empty.
func (s *Service) Recommend(ctx context.Context, title string, k int) Result {
	start := time.Now()
	recs := s.rec.RecommendK(title, k)
	metrics.RecordRecommendation(len(recs) > 0, time.Since(start))

	result := Result{Query: title, Items: make([]Item, 0, len(recs))}
	if len(recs) == 0 {
		result.Notice = NoticeNoRecommendations
		logging.Ctx(ctx).Debug().Str("title", title).Msg("No recommendations for title")
		return result
	}

	for _, r := range recs {
		item := Item{Recommendation: r, DetailURL: tmdb.DetailURL(r.ExternalID)}
		item.PosterURL = s.poster(ctx, r.ExternalID)
		result.Items = append(result.Items, item)
	}
	return result
}

func (s *Service) poster(ctx context.Context, id int) string {
	if s.posters == nil || !s.posters.Enabled() || id < 0 {
		return ""
	}
	url, err := s.posters.PosterURL(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Ctx(ctx).Warn().Err(err).Int("movie_id", id).Msg("Poster lookup failed")
		}
		return ""
	}
	return url
}
