// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// PlaceholderPoster is shown for movies without a poster.
const PlaceholderPoster = "https://placehold.co/500x750/0b1220/9aa8d1?text=No+Poster"

// Tab names used in the tab query parameter.
const (
	TabMovie = "movie"
	TabGenre = "genre"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

// card is one rendered movie.
type card struct {
	Title     string
	Poster    string
	DetailURL string
}

type pageData struct {
	Tab           string
	Titles        []string
	SelectedTitle string
	Genres        []genre.Genre
	SelectedGenre string
	Notice        string
	Cards         []card
	Columns       int
}

// Page renders the single-page interface. Selections are submitted as GET
// forms, so every view is a plain URL.
type Page struct {
	tmpl         *template.Template
	titles       []string
	recs         *recommend.Service
	genres       *genre.Browser
	defaultGenre genre.Genre
}

// NewPage parses the embedded template. titles populate the movie selector
// in order; defaultGenre preselects the genre selector.
func NewPage(titles []string, recs *recommend.Service, genres *genre.Browser, defaultGenre genre.Genre) (*Page, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Page{
		tmpl:         tmpl,
		titles:       titles,
		recs:         recs,
		genres:       genres,
		defaultGenre: defaultGenre,
	}, nil
}

// ServeHTTP renders the page. A title or genre in the query runs the
// corresponding lookup before rendering.
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	data := pageData{
		Tab:           TabMovie,
		Titles:        p.titles,
		Genres:        genre.All(),
		SelectedGenre: p.defaultGenre.Name,
		Columns:       recommend.DefaultK,
	}
	if len(p.titles) > 0 {
		data.SelectedTitle = p.titles[0]
	}
	if q.Get("tab") == TabGenre {
		data.Tab = TabGenre
	}

	switch data.Tab {
	case TabMovie:
		if title := q.Get("title"); title != "" {
			data.SelectedTitle = title
			result := p.recs.Recommend(r.Context(), title, 0)
			data.Notice = result.Notice
			for _, item := range result.Items {
				data.Cards = append(data.Cards, newCard(item.Title, item.PosterURL, item.DetailURL))
			}
			data.Columns = p.recs.Recommender().K()
		}
	case TabGenre:
		if name := q.Get("genre"); name != "" {
			g, ok := genre.Lookup(name)
			if !ok {
				data.Notice = fmt.Sprintf("Unknown genre %q.", name)
				break
			}
			data.SelectedGenre = g.Name
			result := p.genres.Browse(r.Context(), g)
			data.Notice = result.Notice
			for _, item := range result.Items {
				data.Cards = append(data.Cards, newCard(item.Title, item.PosterURL, item.DetailURL))
			}
			data.Columns = p.genres.K()
		}
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to execute page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func newCard(title, poster, detailURL string) card {
	if poster == "" {
		poster = PlaceholderPoster
	}
	return card{Title: title, Poster: poster, DetailURL: detailURL}
}
