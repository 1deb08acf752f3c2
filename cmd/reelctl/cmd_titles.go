// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
)

type titleMatch struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

func newTitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles, optionally by prefix",
		Long: `List the titles that can be passed to "reelctl recommend".

Without --prefix titles are printed in catalog order. With --prefix matches
are case-insensitive and sorted alphabetically.

Examples:
  reelctl titles --limit 20
  reelctl titles --prefix "star wars"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, _ := cmd.Flags().GetString("prefix")
			limit, _ := cmd.Flags().GetInt("limit")

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if _, err := app.FetchArtifacts(cmd.Context(), &cfg.Artifacts); err != nil {
				return err
			}
			cat, err := catalog.LoadCatalog(cfg.Artifacts.CatalogPath)
			if err != nil {
				return err
			}

			matches, total := matchTitles(cat, prefix, limit)
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"total": total, "titles": matches})
			}

			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintln(out, m.Title)
			}
			if len(matches) < total {
				fmt.Fprintf(cmd.ErrOrStderr(), "(%d of %d titles)\n", len(matches), total)
			}
			return nil
		},
	}

	cmd.Flags().String("prefix", "", "Only titles starting with this prefix")
	cmd.Flags().Int("limit", 0, "Maximum number of titles (0 for all)")
	return cmd
}

func matchTitles(cat *catalog.Catalog, prefix string, limit int) ([]titleMatch, int) {
	if prefix == "" {
		records := cat.Records()
		total := len(records)
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		matches := make([]titleMatch, len(records))
		for i, r := range records {
			matches[i] = titleMatch{Index: r.Index, Title: r.Title}
		}
		return matches, total
	}

	trie := cache.NewTrie[int]()
	for _, r := range cat.Records() {
		trie.Insert(r.Title, r.Index)
	}
	results, total := trie.Autocomplete(prefix, 0, limit)
	matches := make([]titleMatch, len(results))
	for i, r := range results {
		matches[i] = titleMatch{Index: r.Data, Title: r.Value}
	}
	return matches, total
}
