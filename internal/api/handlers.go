// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// TMDBStatus reports the state of the TMDB integration for readiness checks.
type TMDBStatus interface {
	Enabled() bool
	BreakerState() string
	CacheStats() map[string]cache.Stats
}

// Deps are the services the handlers read from. Catalog, Matrix,
// Recommendations and Genres are required.
type Deps struct {
	Catalog         *catalog.Catalog
	Matrix          *catalog.SimilarityMatrix
	Recommendations *recommend.Service
	Genres          *genre.Browser
	TMDB            TMDBStatus
	Performance     *middleware.PerformanceMonitor
	Version         string
}

// Handler serves the /api/v1 endpoints.
type Handler struct {
	catalog   *catalog.Catalog
	matrix    *catalog.SimilarityMatrix
	recs      *recommend.Service
	genres    *genre.Browser
	tmdb      TMDBStatus
	perfMon   *middleware.PerformanceMonitor
	titles    *cache.Trie[int]
	version   string
	startTime time.Time
}

// NewHandler creates the API handler and indexes the catalog titles for
// prefix search.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		catalog:   deps.Catalog,
		matrix:    deps.Matrix,
		recs:      deps.Recommendations,
		genres:    deps.Genres,
		tmdb:      deps.TMDB,
		perfMon:   deps.Performance,
		titles:    cache.NewTrie[int](),
		version:   deps.Version,
		startTime: time.Now(),
	}
	if h.perfMon == nil {
		h.perfMon = middleware.NewPerformanceMonitor(0)
	}
	if h.catalog != nil {
		for _, m := range h.catalog.Records() {
			h.titles.Insert(m.Title, m.Index)
		}
	}
	return h
}

// PerformanceMonitor returns the latency sampler fed by the router.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// MovieItem is one catalog entry in /api/v1/movies.
type MovieItem struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	ExternalID int    `json:"movie_id"`
}

// Movies lists catalog titles in catalog order, or autocompletes q as a
// case-insensitive prefix when given.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := bindMovies(rw, r)
	if !ok {
		return
	}

	var (
		items []MovieItem
		total int
	)
	if req.Q == "" {
		records := h.catalog.Records()
		total = len(records)
		if req.Offset < total {
			end := min(req.Offset+req.Limit, total)
			for _, m := range records[req.Offset:end] {
				items = append(items, MovieItem{Index: m.Index, Title: m.Title, ExternalID: m.ExternalID})
			}
		}
	} else {
		var matches []cache.TrieResult[int]
		matches, total = h.titles.Autocomplete(req.Q, req.Offset, req.Limit)
		for _, m := range matches {
			rec := h.catalog.At(m.Data)
			items = append(items, MovieItem{Index: rec.Index, Title: rec.Title, ExternalID: rec.ExternalID})
		}
	}
	if items == nil {
		items = []MovieItem{}
	}

	rw.SuccessWithPagination(items, &PaginationMeta{
		Total:   total,
		Count:   len(items),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: req.Offset+len(items) < total,
	})
}

// Recommendations returns the K movies most similar to the title, with
// posters when TMDB is enabled. An unknown title is a 200 with a notice.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := bindRecommendations(rw, r, h.recs.Recommender().K())
	if !ok {
		return
	}

	result := h.recs.Recommend(r.Context(), req.Title, req.K)
	logging.Ctx(r.Context()).Debug().
		Str("title", req.Title).
		Int("k", req.K).
		Int("items", len(result.Items)).
		Msg("Recommendations served")

	rw.Success(result)
}

// Genres returns the genre table in display order.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(genre.All())
}

// GenreMovies returns popular movies for a genre given by name or TMDB id.
func (h *Handler) GenreMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	raw := chi.URLParam(r, "genre")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	g, found := genre.Lookup(raw)
	if !found {
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, "Unknown genre",
			map[string]any{"genre": raw, "available": genre.Names()})
		return
	}

	req, ok := bindGenreMovies(rw, r, h.genres.K())
	if !ok {
		return
	}

	rw.Success(h.genres.BrowseK(r.Context(), g, req.K))
}
