// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"fmt"
	"math"
)

// SimilarityMatrix is an immutable N x N matrix of pairwise scores, stored row-major.
//
// Scores are only compared with each other. Any finite or infinite value is
// accepted; NaN is rejected because it cannot be ordered.
type SimilarityMatrix struct {
	n      int
	scores []float64
}

// NewSimilarityMatrix copies rows into a matrix after checking it is square,
// non-empty and NaN-free.
func NewSimilarityMatrix(rows [][]float64) (*SimilarityMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: similarity matrix is empty", ErrInvalidArtifact)
	}

	scores := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: similarity row %d has %d entries, want %d",
				ErrInvalidArtifact, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: similarity[%d][%d] is NaN", ErrInvalidArtifact, i, j)
			}
		}
		scores = append(scores, row...)
	}

	return &SimilarityMatrix{n: n, scores: scores}, nil
}

// newFromFlat takes ownership of a row-major slice already checked by the caller.
func newFromFlat(n int, scores []float64) *SimilarityMatrix {
	return &SimilarityMatrix{n: n, scores: scores}
}

// Dim returns N.
func (m *SimilarityMatrix) Dim() int {
	return m.n
}

// Score returns the similarity between movies i and j.
// It panics if either index is out of range.
func (m *SimilarityMatrix) Score(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("catalog: similarity index (%d, %d) out of range for dim %d", i, j, m.n))
	}
	return m.scores[i*m.n+j]
}

// Row returns a copy of row i.
func (m *SimilarityMatrix) Row(i int) []float64 {
	out := make([]float64, m.n)
	copy(out, m.scores[i*m.n:(i+1)*m.n])
	return out
}

// Rows returns a copy of the whole matrix as nested slices.
func (m *SimilarityMatrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}
