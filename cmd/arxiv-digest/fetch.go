// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/storage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch arXiv paper metadata for categories and a time period",
	Long: `Fetch retrieves paper metadata for the given categories and period.
Date-range periods query the arXiv API in polite chunks; "today" reads the
daily Atom feed; both fall back to scraping the HTML listing pages when
the preferred source errors or returns nothing. Results are deduplicated
and, unless --include-replacements is set, filtered to new submissions
and cross-lists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, _ := cmd.Flags().GetStringSlice("categories")
		period, _ := cmd.Flags().GetString("period")
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		includeReplacements, _ := cmd.Flags().GetBool("include-replacements")

		// Fall back to the preferences document for the category list.
		if len(categories) == 0 {
			storageDir, _ := cmd.Flags().GetString("storage-dir")
			paths := storage.ResolvePaths(storageDir, os.Getenv)
			if prefs, err := storage.LoadPreferences(paths.Prefs); err == nil {
				categories = prefs.ArxivCategories
				log.Info().Strs("categories", categories).Msg("loaded categories from preferences")
			}
		}
		if len(categories) == 0 {
			return fmt.Errorf("no categories specified: use --categories or create preferences with 'storage create-prefs'")
		}

		cfg := fetchConfig(cmd)
		f := fetch.New(httpClient(cfg), cfg, log)

		papers, err := f.FetchPapers(cmd.Context(), categories, period, includeReplacements)
		if err != nil {
			return fmt.Errorf("fetching papers: %w", err)
		}

		if output != "" {
			if err := fetch.WriteFile(papers, output, format); err != nil {
				return err
			}
			log.Info().Int("count", len(papers)).Str("path", output).Msg("wrote papers")
			return nil
		}
		return fetch.WriteJSON(papers, os.Stdout)
	},
}

func init() {
	fetchCmd.Flags().StringSliceP("categories", "c", nil, "arXiv categories (e.g. astro-ph.CO,astro-ph.GA)")
	fetchCmd.Flags().StringP("period", "t", "today", "time period: 'today', 'week', 'month', '<N>d', 'recent', 'YYYY-MM', 'YYYY-MM-DD', or 'YYYY-MM-DD:YYYY-MM-DD'")
	fetchCmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")
	fetchCmd.Flags().String("format", "json", "output format: json or yaml")
	fetchCmd.Flags().Bool("include-replacements", false, "include replacement papers (default: new + cross-list only)")
	fetchCmd.Flags().Int("chunk-days", 0, "date-range chunk size in days (default 7)")
	fetchCmd.Flags().String("api-base-url", "", "override the query API endpoint")
	fetchCmd.Flags().String("feed-base-url", "", "override the announcement feed endpoint")
	fetchCmd.Flags().String("list-base-url", "", "override the HTML listing endpoint")

	rootCmd.AddCommand(fetchCmd)
}
