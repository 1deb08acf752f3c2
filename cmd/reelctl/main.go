// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

var version = "dev"

// loadConfig is replaced in tests.
var loadConfig = config.Load

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reelctl",
		Short: "ReelMatch command line client",
		Long: `reelctl runs ReelMatch queries against the local artifacts without
starting the server.

It reads the same configuration as the server: config.yaml and the
CATALOG_PATH, SIMILARITY_PATH and TMDB_API_KEY environment variables.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level written to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRecommendCmd(),
		newGenreCmd(),
		newGenresCmd(),
		newTitlesCmd(),
		newFetchArtifactsCmd(),
		newConvertSimilarityCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reelctl version %s\n", version)
			return nil
		},
	}
}

// loadApp loads configuration and both artifacts.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return app.New(cmd.Context(), cfg)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
