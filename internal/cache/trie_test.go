// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"testing"
)

func newTitleTrie() *Trie[int] {
	tr := NewTrie[int]()
	for i, title := range []string{
		"Avatar",
		"Avengers: Age of Ultron",
		"The Avengers",
		"avalanche",
		"Spectre",
		"Avatar", // duplicate title, later index
	} {
		tr.Insert(title, i)
	}
	return tr
}

func TestTrie_InsertAndSearch(t *testing.T) {
	tr := newTitleTrie()

	if tr.Size() != 5 {
		t.Errorf("Size() = %d, want 5", tr.Size())
	}

	idx, ok := tr.Search("AVATAR")
	if !ok {
		t.Fatal("Search(AVATAR) should match case-insensitively")
	}
	if idx != 0 {
		t.Errorf("duplicate title should keep first index, got %d", idx)
	}

	if _, ok := tr.Search("Ava"); ok {
		t.Error("Search should not match a bare prefix")
	}
	if _, ok := tr.Search(""); ok {
		t.Error("Search(\"\") should not match")
	}
	if tr.Insert("", 9) {
		t.Error("Insert(\"\") should be rejected")
	}
}

func TestTrie_HasPrefix(t *testing.T) {
	tr := newTitleTrie()

	tests := []struct {
		prefix string
		want   bool
	}{
		{"av", true},
		{"THE", true},
		{"spec", true},
		{"x", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := tr.HasPrefix(tt.prefix); got != tt.want {
			t.Errorf("HasPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}

	if NewTrie[int]().HasPrefix("") {
		t.Error("empty trie HasPrefix(\"\") should be false")
	}
}

func TestTrie_Autocomplete(t *testing.T) {
	tr := newTitleTrie()

	results, total := tr.Autocomplete("av", 0, 0)
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	want := []string{"avalanche", "Avatar", "Avengers: Age of Ultron"}
	for i, w := range want {
		if results[i].Value != w {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Value, w)
		}
	}
	if results[1].Count != 2 {
		t.Errorf("Avatar count = %d, want 2", results[1].Count)
	}
}

func TestTrie_AutocompletePaging(t *testing.T) {
	tr := newTitleTrie()

	page, total := tr.Autocomplete("av", 1, 1)
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(page) != 1 || page[0].Value != "Avatar" {
		t.Errorf("page = %+v, want [Avatar]", page)
	}

	page, total = tr.Autocomplete("av", 5, 10)
	if total != 3 || len(page) != 0 {
		t.Errorf("offset past end: page=%v total=%d", page, total)
	}

	page, total = tr.Autocomplete("zzz", 0, 10)
	if total != 0 || page != nil {
		t.Errorf("no match: page=%v total=%d", page, total)
	}

	all, total := tr.Autocomplete("", 0, 0)
	if total != 5 || len(all) != 5 {
		t.Errorf("empty prefix should list all titles, got %d/%d", len(all), total)
	}
}

func TestTrie_Unicode(t *testing.T) {
	tr := NewTrie[int]()
	tr.Insert("Amélie", 1)
	tr.Insert("Ámbito", 2)

	if idx, ok := tr.Search("amélie"); !ok || idx != 1 {
		t.Errorf("Search(amélie) = %d, %v", idx, ok)
	}
	if results, total := tr.Autocomplete("á", 0, 0); total != 1 || results[0].Data != 2 {
		t.Errorf("Autocomplete(á) = %+v, total %d", results, total)
	}
}
