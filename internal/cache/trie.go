// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"sort"
	"strings"
	"sync"
)

// trieNode is a node in the Trie.
type trieNode[T any] struct {
	children map[rune]*trieNode[T]
	isEnd    bool
	value    string // original spelling of the stored key
	data     T
	count    int // number of times this key was inserted
}

func newTrieNode[T any]() *trieNode[T] {
	return &trieNode[T]{children: make(map[rune]*trieNode[T])}
}

// Trie is a thread-safe, case-insensitive prefix tree used for title autocomplete.
//
// Insert, Search and prefix descent are O(m) in the key length. Re-inserting
// an existing key only bumps its count: the data from the first insertion is
// kept, so duplicate titles resolve to their first occurrence.
type Trie[T any] struct {
	mu   sync.RWMutex
	root *trieNode[T]
	size int
}

// TrieResult is an autocomplete match.
type TrieResult[T any] struct {
	Value string
	Data  T
	Count int
}

// NewTrie creates an empty Trie.
func NewTrie[T any]() *Trie[T] {
	return &Trie[T]{root: newTrieNode[T]()}
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Insert adds value with its associated data.
// Returns true if value was not present before.
func (t *Trie[T]) Insert(value string, data T) bool {
	if value == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range normalizeKey(value) {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode[T]()
			node.children[ch] = child
		}
		node = child
	}

	node.count++
	if node.isEnd {
		return false
	}

	node.isEnd = true
	node.value = value
	node.data = data
	t.size++
	return true
}

// Search looks up an exact key (case-insensitively).
func (t *Trie[T]) Search(value string) (T, bool) {
	var zero T
	if value == "" {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(normalizeKey(value))
	if node == nil || !node.isEnd {
		return zero, false
	}
	return node.data, true
}

// HasPrefix reports whether any stored key starts with prefix.
func (t *Trie[T]) HasPrefix(prefix string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if prefix == "" {
		return t.size > 0
	}
	return t.find(normalizeKey(prefix)) != nil
}

// Autocomplete returns keys starting with prefix, ordered alphabetically
// (case-insensitive) with ties broken by the original spelling.
// It skips offset matches and returns at most limit of the rest, together
// with the total number of matches. A non-positive limit means no limit.
func (t *Trie[T]) Autocomplete(prefix string, offset, limit int) ([]TrieResult[T], int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(normalizeKey(prefix))
	if node == nil {
		return nil, 0
	}

	var results []TrieResult[T]
	collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		li, lj := normalizeKey(results[i].Value), normalizeKey(results[j].Value)
		if li != lj {
			return li < lj
		}
		return results[i].Value < results[j].Value
	})

	total := len(results)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []TrieResult[T]{}, total
	}
	results = results[offset:]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, total
}

// Size returns the number of distinct keys.
func (t *Trie[T]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// find walks to the node for key, or nil (must be called with lock held).
func (t *Trie[T]) find(key string) *trieNode[T] {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect[T any](node *trieNode[T], results *[]TrieResult[T]) {
	if node.isEnd {
		*results = append(*results, TrieResult[T]{
			Value: node.value,
			Data:  node.data,
			Count: node.count,
		})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}
