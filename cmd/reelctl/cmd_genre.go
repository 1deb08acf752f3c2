// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/genre"
)

func newGenreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genre <name|id>",
		Short: "Show popular movies for a TMDB genre",
		Long: `Browse TMDB's most popular movies in a genre. Requires TMDB_API_KEY.

Examples:
  reelctl genre Comedy
  reelctl genre "science fiction"
  reelctl genre 878 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			g, ok := genre.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown genre %q (available: %s)", name, strings.Join(genre.Names(), ", "))
			}
			k, _ := cmd.Flags().GetInt("k")

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			res := a.Genres.BrowseK(cmd.Context(), g, k)
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			if res.Notice != "" {
				fmt.Fprintln(out, res.Notice)
				return nil
			}
			fmt.Fprintf(out, "Popular %s movies:\n", g.Name)
			for i, item := range res.Items {
				fmt.Fprintf(out, "%2d. %s\n", i+1, item.Title)
				if item.DetailURL != "" {
					fmt.Fprintf(out, "    %s\n", item.DetailURL)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("k", 0, "Number of movies (default from RECOMMEND_TOP_K)")
	return cmd
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the supported genres and their TMDB ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), genre.All())
			}
			for _, g := range genre.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", g.Name, g.ID)
			}
			return nil
		},
	}
}
