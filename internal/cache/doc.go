// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides the in-memory data structures behind TMDB response
caching and catalog title autocomplete.

# LRU

LRU is a generic, bounded, thread-safe cache with per-entry TTL:

	posters := cache.NewLRU[int, string](5000, 24*time.Hour)
	posters.Set(19995, "https://image.tmdb.org/t/p/w500/abc.jpg")
	if url, ok := posters.Get(19995); ok {
	    // use url
	}

Expired entries are dropped lazily on Get and in bulk by CleanupExpired,
which the supervised cache janitor calls periodically.

# Trie

Trie is a case-insensitive prefix tree with associated data, used to answer
"titles starting with ..." queries over the catalog:

	titles := cache.NewTrie[int]()
	titles.Insert("Avatar", 0)
	matches, total := titles.Autocomplete("ava", 0, 20)

Both structures are stdlib-only and safe for concurrent use.
*/
package cache
