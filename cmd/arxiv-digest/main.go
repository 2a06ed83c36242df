// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process logger; --quiet raises its level to error.
var log zerolog.Logger

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Fetch arXiv metadata and build researcher collaboration profiles",
	Long: `arxiv-digest fetches arXiv paper metadata for chosen categories and time
periods, with automatic fallback across the query API, the daily Atom feeds,
and HTML listing pages. It builds researcher profiles with ranked co-author
networks and manages a small JSON storage root for digest state.

Each operation is a subcommand: fetch, profile, and storage.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = newLogger(cmd)
	},
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	l := zerolog.New(out).With().Timestamp().Logger()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		l = l.Level(zerolog.ErrorLevel)
	}
	return l
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/config.yaml)")
	rootCmd.PersistentFlags().String("storage-dir", "", "storage root override (default: ARXIV_DIGEST_HOME, XDG_DATA_HOME/arxiv-digest, or ~/.claude/arxiv-digest)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress log messages")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	viper.SetEnvPrefix("ARXIV_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// fetchConfig merges defaults with config-file values and per-command
// flag overrides.
func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	cfg := types.DefaultFetchConfig()

	if v := viper.GetString("api_base_url"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := viper.GetString("feed_base_url"); v != "" {
		cfg.FeedBaseURL = v
	}
	if v := viper.GetString("list_base_url"); v != "" {
		cfg.ListBaseURL = v
	}
	if v := viper.GetString("user_agent"); v != "" {
		cfg.UserAgent = v
	}
	if v := viper.GetInt("chunk_days"); v > 0 {
		cfg.ChunkDays = v
	}

	for flag, dst := range map[string]*string{
		"api-base-url":  &cfg.APIBaseURL,
		"feed-base-url": &cfg.FeedBaseURL,
		"list-base-url": &cfg.ListBaseURL,
	} {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	if cmd.Flags().Lookup("chunk-days") != nil {
		if v, _ := cmd.Flags().GetInt("chunk-days"); v > 0 {
			cfg.ChunkDays = v
		}
	}
	return cfg
}

func httpClient(cfg types.FetchConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
