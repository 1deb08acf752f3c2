// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cat, err := New([]MovieRecord{
		{Index: 7, Title: "Avatar", ExternalID: 19995},
		{Title: "Spectre", ExternalID: 206647},
		{Title: "Avatar", ExternalID: 1},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if cat.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cat.Len())
	}
	for i := 0; i < cat.Len(); i++ {
		if cat.At(i).Index != i {
			t.Errorf("At(%d).Index = %d, want positional index", i, cat.At(i).Index)
		}
	}

	idx, ok := cat.IndexOf("Avatar")
	if !ok || idx != 0 {
		t.Errorf("IndexOf(Avatar) = %d, %v; want first occurrence 0", idx, ok)
	}
	if _, ok := cat.IndexOf("avatar"); ok {
		t.Error("IndexOf should be case-sensitive")
	}
	if _, ok := cat.IndexOf("Missing"); ok {
		t.Error("IndexOf(Missing) should not match")
	}

	titles := cat.Titles()
	if len(titles) != 3 || titles[2] != "Avatar" {
		t.Errorf("Titles() = %v", titles)
	}
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); !errors.Is(err, ErrInvalidArtifact) {
		t.Errorf("New(nil) error = %v, want ErrInvalidArtifact", err)
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	t.Parallel()

	cat, _ := New([]MovieRecord{{Title: "Avatar", ExternalID: 19995}})
	recs := cat.Records()
	recs[0].Title = "changed"

	if cat.At(0).Title != "Avatar" {
		t.Error("mutating Records() result must not affect the catalog")
	}
}

func TestHasExternalIDs(t *testing.T) {
	t.Parallel()

	with, _ := New([]MovieRecord{{Title: "A", ExternalID: NoExternalID}, {Title: "B", ExternalID: 5}})
	without, _ := New([]MovieRecord{{Title: "A", ExternalID: NoExternalID}})

	if !with.HasExternalIDs() {
		t.Error("expected HasExternalIDs() = true")
	}
	if without.HasExternalIDs() {
		t.Error("expected HasExternalIDs() = false")
	}
	if without.At(0).HasExternalID() {
		t.Error("NoExternalID record should report no id")
	}
}

func TestNewSimilarityMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    [][]float64
		wantErr bool
	}{
		{"square", [][]float64{{1, 0.5}, {0.5, 1}}, false},
		{"single", [][]float64{{1}}, false},
		{"negative and inf allowed", [][]float64{{1, -2}, {math.Inf(1), 0}}, false},
		{"empty", nil, true},
		{"ragged", [][]float64{{1, 0.5}, {0.5}}, true},
		{"not square", [][]float64{{1, 0.5, 0.2}, {0.5, 1, 0.1}}, true},
		{"nan", [][]float64{{1, math.NaN()}, {0.5, 1}}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSimilarityMatrix(tt.rows)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArtifact) {
					t.Errorf("error = %v, want ErrInvalidArtifact", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSimilarityMatrix_Accessors(t *testing.T) {
	t.Parallel()

	rows := [][]float64{
		{1.0, 0.2, 0.3},
		{0.2, 1.0, 0.4},
		{0.3, 0.4, 1.0},
	}
	m, err := NewSimilarityMatrix(rows)
	if err != nil {
		t.Fatal(err)
	}

	// Input slices are copied
	rows[0][1] = 99

	if m.Dim() != 3 {
		t.Errorf("Dim() = %d, want 3", m.Dim())
	}
	if got := m.Score(0, 1); got != 0.2 {
		t.Errorf("Score(0,1) = %v, want 0.2", got)
	}
	if got := m.Score(2, 1); got != 0.4 {
		t.Errorf("Score(2,1) = %v, want 0.4", got)
	}

	row := m.Row(1)
	row[0] = -1
	if m.Score(1, 0) != 0.2 {
		t.Error("mutating Row() result must not affect the matrix")
	}

	if got := m.Rows(); len(got) != 3 || got[2][2] != 1.0 {
		t.Errorf("Rows() = %v", got)
	}
}

func TestSimilarityMatrix_ScoreOutOfRange(t *testing.T) {
	t.Parallel()

	m, _ := NewSimilarityMatrix([][]float64{{1}})
	defer func() {
		if recover() == nil {
			t.Error("Score out of range should panic")
		}
	}()
	m.Score(0, 1)
}

func TestCheckAligned(t *testing.T) {
	t.Parallel()

	cat, _ := New([]MovieRecord{{Title: "A"}, {Title: "B"}})
	two, _ := NewSimilarityMatrix([][]float64{{1, 0}, {0, 1}})
	three, _ := NewSimilarityMatrix([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

	if err := CheckAligned(cat, two); err != nil {
		t.Errorf("CheckAligned(2, 2x2) = %v", err)
	}
	if err := CheckAligned(cat, three); !errors.Is(err, ErrInvalidArtifact) {
		t.Errorf("CheckAligned(2, 3x3) = %v, want ErrInvalidArtifact", err)
	}
	if err := CheckAligned(nil, two); err == nil {
		t.Error("CheckAligned(nil, ...) should fail")
	}
}
