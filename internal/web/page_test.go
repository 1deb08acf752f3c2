// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

type stubPosters struct{}

func (stubPosters) Enabled() bool { return true }

func (stubPosters) PosterURL(_ context.Context, id int) (string, error) {
	if id == 597 {
		return "https://image.tmdb.org/t/p/w500/titanic.jpg", nil
	}
	return "", nil
}

type stubDiscover struct {
	enabled bool
}

func (s stubDiscover) Enabled() bool { return s.enabled }

func (stubDiscover) Discover(_ context.Context, genreID, page int) ([]tmdb.Movie, error) {
	if page > 1 {
		return nil, nil
	}
	return []tmdb.Movie{{ID: 155, Title: "The Dark Knight", PosterPath: "/dk.jpg"}, {ID: tmdb.NoID, Name: "Nameless"}}, nil
}

func (stubDiscover) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + path
}

func newTestPage(t *testing.T, tmdbEnabled bool) *Page {
	t.Helper()
	cat, err := catalog.New([]catalog.MovieRecord{
		{Title: "Avatar", ExternalID: 19995},
		{Title: "Titanic", ExternalID: 597},
		{Title: "Aliens & Co", ExternalID: catalog.NoExternalID},
	})
	if err != nil {
		t.Fatal(err)
	}
	sim, err := catalog.NewSimilarityMatrix([][]float64{{1, 0.8, 0.2}, {0.8, 1, 0.1}, {0.2, 0.1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := recommend.NewRecommender(cat, sim, 5)
	if err != nil {
		t.Fatal(err)
	}
	action, _ := genre.Lookup(genre.DefaultName)
	page, err := NewPage(cat.Titles(), recommend.NewService(rec, stubPosters{}), genre.NewBrowser(stubDiscover{enabled: tmdbEnabled}, 2, 5), action)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return page
}

func get(t *testing.T, h http.Handler, query url.Values) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil))
	return rec.Code, rec.Body.String()
}

func TestPage_Default(t *testing.T) {
	code, body := get(t, newTestPage(t, true), nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, want := range []string{
		"Recommend by Movie",
		"Browse by Genre",
		`<option value="Avatar" selected>`,
		"Aliens &amp; Co",
		"Posters © TMDB • Personal API key required.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, `class="card"`) {
		t.Error("no cards expected before a selection")
	}
}

func TestPage_Recommend(t *testing.T) {
	code, body := get(t, newTestPage(t, true), url.Values{"tab": {"movie"}, "title": {"Avatar"}})
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if strings.Count(body, `class="card"`) != 2 {
		t.Errorf("expected 2 cards:\n%s", body)
	}
	if !strings.Contains(body, "https://image.tmdb.org/t/p/w500/titanic.jpg") {
		t.Error("missing Titanic poster")
	}
	if !strings.Contains(body, PlaceholderPoster[:len("https://placehold.co/500x750")]) {
		t.Error("missing placeholder for movie without poster")
	}
	if strings.Count(body, "View on TMDB ↗") != 1 {
		t.Error("only the movie with an id should link to TMDB")
	}
}

func TestPage_UnknownTitle(t *testing.T) {
	_, body := get(t, newTestPage(t, true), url.Values{"title": {"Nope"}})
	if !strings.Contains(body, recommend.NoticeNoRecommendations) {
		t.Error("missing no-recommendations notice")
	}
}

func TestPage_Genre(t *testing.T) {
	_, body := get(t, newTestPage(t, true), url.Values{"tab": {"genre"}, "genre": {"war"}})
	if !strings.Contains(body, `<option value="War" selected>`) {
		t.Error("War not selected")
	}
	if !strings.Contains(body, "The Dark Knight") || !strings.Contains(body, "Nameless") {
		t.Errorf("genre cards missing:\n%s", body)
	}
}

func TestPage_GenreUnavailable(t *testing.T) {
	_, body := get(t, newTestPage(t, false), url.Values{"tab": {"genre"}, "genre": {"Action"}})
	if !strings.Contains(body, "Couldn&#39;t fetch movies for this genre right now.") {
		t.Errorf("missing unavailable notice:\n%s", body)
	}
}

func TestPage_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestPage(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}
