// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package genre

import (
	"strconv"
	"strings"
)

// Genre is a TMDB movie genre.
type Genre struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// DefaultName is the genre selected when none is given.
const DefaultName = "Action"

var table = []Genre{
	{"Action", 28},
	{"Adventure", 12},
	{"Animation", 16},
	{"Comedy", 35},
	{"Crime", 80},
	{"Documentary", 99},
	{"Drama", 18},
	{"Family", 10751},
	{"Fantasy", 14},
	{"History", 36},
	{"Horror", 27},
	{"Musical", 10402},
	{"Mystery", 9648},
	{"Romance", 10749},
	{"Science Fiction", 878},
	{"Thriller", 53},
	{"War", 10752},
}

// All returns the genre table in display order.
func All() []Genre {
	out := make([]Genre, len(table))
	copy(out, table)
	return out
}

// Names returns genre names in display order.
func Names() []string {
	names := make([]string, len(table))
	for i, g := range table {
		names[i] = g.Name
	}
	return names
}

// Lookup resolves a genre by case-insensitive name or by numeric TMDB id.
func Lookup(nameOrID string) (Genre, bool) {
	key := strings.TrimSpace(nameOrID)
	if key == "" {
		return Genre{}, false
	}
	if id, err := strconv.Atoi(key); err == nil {
		return ByID(id)
	}
	for _, g := range table {
		if strings.EqualFold(g.Name, key) {
			return g, true
		}
	}
	return Genre{}, false
}

// ByID resolves a genre by TMDB id.
func ByID(id int) (Genre, bool) {
	for _, g := range table {
		if g.ID == id {
			return g, true
		}
	}
	return Genre{}, false
}
