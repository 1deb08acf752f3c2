// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
)

// NoExternalID marks a movie without a TMDB id: no poster and no detail link.
const NoExternalID = -1

// ErrInvalidArtifact is wrapped by every error caused by malformed artifact content.
var ErrInvalidArtifact = errors.New("invalid artifact")

// MovieRecord is one catalog entry. Index is its position in the catalog and
// equals its row and column in the similarity matrix.
type MovieRecord struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	ExternalID int    `json:"external_id"`
}

// HasExternalID reports whether the record carries a usable TMDB id.
func (m MovieRecord) HasExternalID() bool {
	return m.ExternalID != NoExternalID
}

// Catalog is an immutable, ordered list of movies.
// Safe for concurrent use since nothing mutates it after construction.
type Catalog struct {
	records []MovieRecord
	byTitle map[string]int
}

// New builds a catalog from records. Indexes are reassigned positionally.
// When several records share a title, IndexOf resolves to the first.
func New(records []MovieRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidArtifact)
	}

	c := &Catalog{
		records: make([]MovieRecord, len(records)),
		byTitle: make(map[string]int, len(records)),
	}
	for i, r := range records {
		r.Index = i
		c.records[i] = r
		if _, seen := c.byTitle[r.Title]; !seen {
			c.byTitle[r.Title] = i
		}
	}
	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.records)
}

// At returns the record at index i. It panics if i is out of range.
func (c *Catalog) At(i int) MovieRecord {
	return c.records[i]
}

// Records returns a copy of all records in catalog order.
func (c *Catalog) Records() []MovieRecord {
	out := make([]MovieRecord, len(c.records))
	copy(out, c.records)
	return out
}

// IndexOf returns the index of the first movie whose title equals title exactly.
func (c *Catalog) IndexOf(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// Titles returns all titles in catalog order, duplicates included.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Title
	}
	return out
}

// HasExternalIDs reports whether any record carries a TMDB id.
func (c *Catalog) HasExternalIDs() bool {
	for _, r := range c.records {
		if r.HasExternalID() {
			return true
		}
	}
	return false
}

// CheckAligned verifies that the matrix has one row and column per catalog entry.
func CheckAligned(cat *Catalog, sim *SimilarityMatrix) error {
	if cat == nil || sim == nil {
		return fmt.Errorf("%w: catalog and similarity matrix are required", ErrInvalidArtifact)
	}
	if cat.Len() != sim.Dim() {
		return fmt.Errorf("%w: catalog has %d movies but similarity matrix is %dx%d",
			ErrInvalidArtifact, cat.Len(), sim.Dim(), sim.Dim())
	}
	return nil
}
