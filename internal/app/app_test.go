// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/reelmatch/internal/artifacts"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "movies.json")
	similarityPath := filepath.Join(dir, "similarity.json")
	writeFile(t, catalogPath, `[{"title":"Avatar","movie_id":19995},{"title":"Titanic","movie_id":597},{"title":"Up","movie_id":14160}]`)
	writeFile(t, similarityPath, `[[1,0.2,0.7],[0.2,1,0.1],[0.7,0.1,1]]`)

	return &config.Config{
		Artifacts: config.ArtifactsConfig{CatalogPath: catalogPath, SimilarityPath: similarityPath},
		Recommend: config.RecommendConfig{TopK: 1, GenrePages: 1, DefaultGenre: "Comedy"},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if a.Catalog.Len() != 3 || a.Matrix.Dim() != 3 {
		t.Errorf("catalog=%d matrix=%d", a.Catalog.Len(), a.Matrix.Dim())
	}
	if a.TMDB.Enabled() {
		t.Error("TMDB should be disabled without an API key")
	}

	recs := a.Recommender.Recommend("Avatar")
	if len(recs) != 1 || recs[0].Title != "Up" {
		t.Errorf("recommendations = %+v", recs)
	}

	res := a.Recommendations.Recommend(context.Background(), "Avatar", 0)
	if len(res.Items) != 1 || res.Items[0].PosterURL != "" {
		t.Errorf("result = %+v", res)
	}
}

func TestNew_MissingArtifact(t *testing.T) {
	cfg := testConfig(t)
	cfg.Artifacts.SimilarityPath = filepath.Join(t.TempDir(), "absent.json")

	_, err := New(context.Background(), cfg)
	if !errors.Is(err, artifacts.ErrNoSource) {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestNew_Misaligned(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.Artifacts.SimilarityPath, `[[1,0],[0,1]]`)

	_, err := New(context.Background(), cfg)
	if !errors.Is(err, catalog.ErrInvalidArtifact) {
		t.Errorf("err = %v, want ErrInvalidArtifact", err)
	}
}

func TestDefaultGenre(t *testing.T) {
	a := &App{Config: &config.Config{Recommend: config.RecommendConfig{DefaultGenre: "comedy"}}}
	if got := a.DefaultGenre(); got.Name != "Comedy" {
		t.Errorf("DefaultGenre() = %+v", got)
	}

	a.Config.Recommend.DefaultGenre = "Nope"
	if got := a.DefaultGenre(); got.Name != "Action" {
		t.Errorf("fallback = %+v", got)
	}
}
