// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/catalog"
)

func newFetchArtifactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-artifacts",
		Short: "Download the catalog and similarity artifacts if missing",
		Long: `Make sure both artifacts exist locally.

Missing files are downloaded from CATALOG_URL / SIMILARITY_URL or the
matching Google Drive ids. Files already present are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			results, err := app.FetchArtifacts(cmd.Context(), &cfg.Artifacts)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			for _, res := range results {
				status := "present"
				if res.Downloaded {
					status = "downloaded"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s (%d bytes)\n", status, res.Path, res.Size)
			}
			return nil
		},
	}
}

func newConvertSimilarityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert-similarity <in.json> <out.arrow>",
		Short: "Rewrite a JSON similarity matrix as an Arrow IPC file",
		Long: `Read a square JSON similarity matrix and write it as the Arrow IPC
artifact the server loads fastest.

Example:
  reelctl convert-similarity data/similarity.json data/similarity.arrow`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			format, err := catalog.DetectFormat(out)
			if err != nil {
				return err
			}
			if format != catalog.FormatArrow {
				return fmt.Errorf("output %s must be an Arrow file (.arrow, .ipc or .feather)", out)
			}

			sim, err := catalog.LoadSimilarity(in)
			if err != nil {
				return err
			}
			if err := catalog.WriteSimilarityArrow(out, sim); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"path": out, "dim": sim.Dim()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d matrix to %s\n", sim.Dim(), sim.Dim(), out)
			return nil
		},
	}
}
