// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

func mustCatalog(t *testing.T, titles ...string) *catalog.Catalog {
	t.Helper()
	records := make([]catalog.MovieRecord, len(titles))
	for i, title := range titles {
		records[i] = catalog.MovieRecord{Title: title, ExternalID: 100 + i}
	}
	cat, err := catalog.New(records)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func mustMatrix(t *testing.T, rows [][]float64) *catalog.SimilarityMatrix {
	t.Helper()
	m, err := catalog.NewSimilarityMatrix(rows)
	if err != nil {
		t.Fatalf("NewSimilarityMatrix: %v", err)
	}
	return m
}

func titlesOf(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestRecommend_Scenarios(t *testing.T) {
	abcd := mustCatalog(t, "A", "B", "C", "D")
	abcdSim := mustMatrix(t, [][]float64{
		{1.0, 0.9, 0.95, 0.1},
		{0.9, 1.0, 0.2, 0.3},
		{0.95, 0.2, 1.0, 0.4},
		{0.1, 0.3, 0.4, 1.0},
	})

	three := mustCatalog(t, "X", "Y", "Z")
	threeSim := mustMatrix(t, [][]float64{
		{1.0, 0.5, 0.5},
		{0.5, 1.0, 0.1},
		{0.5, 0.1, 1.0},
	})

	tests := []struct {
		name     string
		selected string
		cat      *catalog.Catalog
		sim      *catalog.SimilarityMatrix
		k        int
		want     []string
	}{
		{"higher score first, self excluded", "A", abcd, abcdSim, 2, []string{"C", "B"}},
		{"k larger than catalog", "X", three, threeSim, 5, []string{"Y", "Z"}},
		{"ties keep index order", "X", three, threeSim, 2, []string{"Y", "Z"}},
		{"default k", "A", abcd, abcdSim, 0, []string{"C", "B", "D"}},
		{"negative k uses default", "D", abcd, abcdSim, -3, []string{"C", "B", "A"}},
		{"k of one", "B", abcd, abcdSim, 1, []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titlesOf(Recommend(tt.selected, tt.cat, tt.sim, tt.k))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend(%q, k=%d) = %v, want %v", tt.selected, tt.k, got, tt.want)
			}
		})
	}
}

func TestRecommend_UnknownTitle(t *testing.T) {
	cat := mustCatalog(t, "A", "B")
	sim := mustMatrix(t, [][]float64{{1, 0}, {0, 1}})

	for _, title := range []string{"", "a", "A ", "Missing"} {
		if got := Recommend(title, cat, sim, 5); len(got) != 0 {
			t.Errorf("Recommend(%q) = %v, want empty", title, got)
		}
	}
}

func TestRecommend_SingleMovie(t *testing.T) {
	cat := mustCatalog(t, "Only")
	sim := mustMatrix(t, [][]float64{{1}})

	if got := Recommend("Only", cat, sim, 5); len(got) != 0 {
		t.Errorf("Recommend = %v, want empty", got)
	}
}

func TestRecommend_SelfNotOnTop(t *testing.T) {
	// Scores are opaque; the selected movie is dropped wherever it ranks.
	cat := mustCatalog(t, "A", "B", "C")
	sim := mustMatrix(t, [][]float64{
		{-2.0, 3.5, -0.5},
		{3.5, 1, 0},
		{-0.5, 0, 1},
	})

	got := Recommend("A", cat, sim, 5)
	want := []Recommendation{
		{Index: 1, Title: "B", ExternalID: 101, Score: 3.5},
		{Index: 2, Title: "C", ExternalID: 102, Score: -0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend = %+v, want %+v", got, want)
	}
}

func TestRecommend_DuplicateTitleUsesFirst(t *testing.T) {
	cat := mustCatalog(t, "Dup", "Other", "Dup")
	sim := mustMatrix(t, [][]float64{
		{1, 0.1, 0.9},
		{0.1, 1, 0.2},
		{0.9, 0.2, 1},
	})

	got := Recommend("Dup", cat, sim, 2)
	if len(got) != 2 || got[0].Index != 2 || got[1].Index != 1 {
		t.Errorf("Recommend(Dup) = %+v, want indexes [2 1]", got)
	}
}

func TestRecommend_Properties(t *testing.T) {
	const n = 40
	rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test data

	titles := make([]string, n)
	for i := range titles {
		titles[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			// Coarse values force many ties
			rows[i][j] = float64(rng.Intn(5)) / 4
		}
	}
	cat := mustCatalog(t, titles...)
	sim := mustMatrix(t, rows)
	before := sim.Rows()

	for _, k := range []int{1, 5, 10, n - 1, n + 10} {
		for i, title := range titles {
			got := Recommend(title, cat, sim, k)

			wantLen := k
			if wantLen > n-1 {
				wantLen = n - 1
			}
			if len(got) != wantLen {
				t.Fatalf("k=%d %q: len = %d, want %d", k, title, len(got), wantLen)
			}

			for p, r := range got {
				if r.Index == i {
					t.Fatalf("k=%d %q: result contains the selected movie", k, title)
				}
				if r.Score != sim.Score(i, r.Index) {
					t.Fatalf("k=%d %q: score mismatch at %d", k, title, p)
				}
				if p == 0 {
					continue
				}
				prev := got[p-1]
				if prev.Score < r.Score {
					t.Fatalf("k=%d %q: not sorted descending at %d", k, title, p)
				}
				if prev.Score == r.Score && prev.Index > r.Index {
					t.Fatalf("k=%d %q: tie not broken by index at %d", k, title, p)
				}
			}

			again := Recommend(title, cat, sim, k)
			if !reflect.DeepEqual(got, again) {
				t.Fatalf("k=%d %q: repeated call differs", k, title)
			}
		}
	}

	if !reflect.DeepEqual(before, sim.Rows()) {
		t.Error("similarity matrix modified")
	}
}

func TestRecommend_NilInputs(t *testing.T) {
	cat := mustCatalog(t, "A")
	if got := Recommend("A", cat, nil, 5); got != nil {
		t.Errorf("nil matrix = %v", got)
	}
	if got := Recommend("A", nil, nil, 5); got != nil {
		t.Errorf("nil catalog = %v", got)
	}
}

func TestNewRecommender(t *testing.T) {
	cat := mustCatalog(t, "A", "B", "C")
	sim := mustMatrix(t, [][]float64{{1, 0}, {0, 1}})

	if _, err := NewRecommender(cat, sim, 5); !errors.Is(err, catalog.ErrInvalidArtifact) {
		t.Errorf("misaligned err = %v, want ErrInvalidArtifact", err)
	}

	sim3 := mustMatrix(t, [][]float64{{1, 0.2, 0.8}, {0.2, 1, 0}, {0.8, 0, 1}})
	r, err := NewRecommender(cat, sim3, 0)
	if err != nil {
		t.Fatalf("NewRecommender: %v", err)
	}
	if r.K() != DefaultK {
		t.Errorf("K() = %d, want %d", r.K(), DefaultK)
	}
	if got := titlesOf(r.Recommend("A")); !reflect.DeepEqual(got, []string{"C", "B"}) {
		t.Errorf("Recommend(A) = %v", got)
	}
	if got := titlesOf(r.RecommendK("A", 1)); !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("RecommendK(A, 1) = %v", got)
	}
	if r.Catalog() != cat || r.Matrix() != sim3 {
		t.Error("accessors return different instances")
	}
}
