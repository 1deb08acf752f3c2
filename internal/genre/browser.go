// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package genre

import (
	"context"
	"errors"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// NoticeUnavailable is shown when no movies could be fetched for a genre.
const NoticeUnavailable = "Couldn't fetch movies for this genre right now."

// UntitledTitle is used for entries with neither a title nor a name.
const UntitledTitle = "Untitled"

// DefaultPages is the number of discover pages merged per browse.
const DefaultPages = 2

// Source lists popular movies per genre.
type Source interface {
	Enabled() bool
	Discover(ctx context.Context, genreID, page int) ([]tmdb.Movie, error)
	ImageURL(posterPath string) string
}

// Item is one browsed movie.
type Item struct {
	ExternalID int    `json:"movie_id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url,omitempty"`
	DetailURL  string `json:"detail_url,omitempty"`
}

// Result is the outcome of one browse. An empty Items always carries a Notice.
type Result struct {
	Genre  Genre  `json:"genre"`
	Items  []Item `json:"items"`
	Notice string `json:"notice,omitempty"`
}

// Browser merges discover pages into a top-K list.
type Browser struct {
	source Source
	pages  int
	k      int
}

// NewBrowser creates a Browser returning at most k items from the first pages pages.
func NewBrowser(source Source, pages, k int) *Browser {
	if pages <= 0 {
		pages = DefaultPages
	}
	if k <= 0 {
		k = 5
	}
	return &Browser{source: source, pages: pages, k: k}
}

// K returns the default result size.
func (b *Browser) K() int {
	return b.k
}

// Browse fetches the genre's popular movies. Pages are concatenated in order
// and truncated to K; a failed page contributes nothing. Browse never fails:
// an empty result carries NoticeUnavailable.
func (b *Browser) Browse(ctx context.Context, g Genre) Result {
	return b.BrowseK(ctx, g, b.k)
}

// BrowseK is Browse with an explicit result size; k <= 0 uses the default.
func (b *Browser) BrowseK(ctx context.Context, g Genre, k int) Result {
	if k <= 0 {
		k = b.k
	}
	result := Result{Genre: g, Items: []Item{}}

	if b.source == nil || !b.source.Enabled() {
		result.Notice = NoticeUnavailable
		metrics.RecordGenreBrowse(g.Name, 0)
		return result
	}

	var movies []tmdb.Movie
	for page := 1; page <= b.pages; page++ {
		got, err := b.source.Discover(ctx, g.ID, page)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logging.Ctx(ctx).Warn().Err(err).Str("genre", g.Name).Int("page", page).Msg("Discover page failed")
			}
			continue
		}
		movies = append(movies, got...)
	}

	if len(movies) > k {
		movies = movies[:k]
	}
	for _, m := range movies {
		result.Items = append(result.Items, b.toItem(m))
	}

	if len(result.Items) == 0 {
		result.Notice = NoticeUnavailable
	}
	metrics.RecordGenreBrowse(g.Name, len(result.Items))
	return result
}

func (b *Browser) toItem(m tmdb.Movie) Item {
	title := m.Title
	if title == "" {
		title = m.Name
	}
	if title == "" {
		title = UntitledTitle
	}
	return Item{
		ExternalID: m.ID,
		Title:      title,
		PosterURL:  b.source.ImageURL(m.PosterPath),
		DetailURL:  tmdb.DetailURL(m.ID),
	}
}
