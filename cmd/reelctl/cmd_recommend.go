// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to a catalog title",
		Long: `Rank the catalog by similarity to the given title and print the top K.

The title must match a catalog entry exactly; quote titles with spaces. Posters are looked up when
TMDB_API_KEY is set.

Examples:
  reelctl recommend Avatar
  reelctl recommend "The Dark Knight" --k 10 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("k")
			if k < 0 {
				return fmt.Errorf("--k must not be negative, got %d", k)
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			title := args[0]
			res := a.Recommendations.Recommend(cmd.Context(), title, k)
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			if res.Notice != "" {
				fmt.Fprintln(out, res.Notice)
				return nil
			}
			fmt.Fprintf(out, "Movies similar to %q:\n", title)
			for i, item := range res.Items {
				fmt.Fprintf(out, "%2d. %s (%.3f)\n", i+1, item.Title, item.Score)
				if item.DetailURL != "" {
					fmt.Fprintf(out, "    %s\n", item.DetailURL)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("k", 0, "Number of recommendations (default from RECOMMEND_TOP_K)")
	return cmd
}
