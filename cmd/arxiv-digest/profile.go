// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/profile"
	"github.com/pdiddy/arxiv-digest/internal/storage"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build a researcher profile and collaboration network",
	Long: `Profile finds a researcher's papers via the arXiv API, extracts ranked
co-author statistics and topic keywords, and writes a researcher profile
JSON document. With --expand-network it also builds the second-degree
network by fetching each top collaborator's own papers (slower, one API
search per collaborator). Use --update to refresh an existing profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		orcid, _ := cmd.Flags().GetString("orcid")
		affiliation, _ := cmd.Flags().GetString("affiliation")
		homepage, _ := cmd.Flags().GetString("homepage")
		knownIDs, _ := cmd.Flags().GetStringSlice("arxiv-ids")
		categories, _ := cmd.Flags().GetStringSlice("categories")
		expandNetwork, _ := cmd.Flags().GetBool("expand-network")
		updatePath, _ := cmd.Flags().GetString("update")
		output, _ := cmd.Flags().GetString("output")
		storageDir, _ := cmd.Flags().GetString("storage-dir")

		paths := storage.ResolvePaths(storageDir, os.Getenv)
		cfg := fetchConfig(cmd)
		pcfg := types.DefaultProfileConfig()
		f := fetch.New(httpClient(cfg), cfg, log)
		ctx := cmd.Context()

		researcher := profile.Researcher{
			Name:        name,
			ORCID:       orcid,
			Affiliation: affiliation,
			Homepage:    homepage,
		}

		// Update mode refreshes an existing profile using its stored
		// identity and primary categories.
		if updatePath != "" {
			existing, err := profile.Load(updatePath)
			if err != nil {
				return err
			}
			if existing.Researcher.Name == "" {
				return fmt.Errorf("existing profile at %s has no researcher name", updatePath)
			}
			researcher = existing.Researcher
			name = researcher.Name
			if len(categories) == 0 {
				categories = existing.Publications.PrimaryCategories
			}
			if output == "" {
				output = updatePath
			}
			log.Info().Str("name", name).Msg("updating profile")
		}

		if name == "" {
			return fmt.Errorf("--name is required (or use --update to refresh an existing profile)")
		}
		if output == "" {
			output = paths.Profile
		}

		papers, err := f.SearchAuthorPapers(ctx, name, pcfg.MaxPapers, categories)
		if err != nil {
			log.Error().Err(err).Msg("author search failed: cannot reach the arXiv API")
		}

		// Supplement with explicitly known ids not found by the search.
		if len(knownIDs) > 0 {
			found := make(map[string]bool, len(papers))
			for _, p := range papers {
				found[p.ID] = true
			}
			var extra []string
			for _, id := range knownIDs {
				if !found[types.StripVersion(id)] {
					extra = append(extra, id)
				}
			}
			if len(extra) > 0 {
				extraPapers, err := f.FetchByIDs(ctx, extra)
				if err != nil {
					log.Warn().Err(err).Msg("could not fetch supplemental papers")
				}
				papers = append(papers, extraPapers...)
			}
		}

		if len(papers) == 0 {
			log.Warn().Str("name", name).Msg("no papers found; try --arxiv-ids or a different name format")
		}

		now := time.Now()
		network := profile.BuildNetwork(papers, name, now)
		if expandNetwork && len(network.CoauthorRank) > 0 {
			log.Info().Msg("expanding to second-degree network")
			profile.ExpandSecondDegree(ctx, f, network, profile.ExpandOptions{
				TopN:                 pcfg.ExpandTopN,
				MaxPapersPerCoauthor: pcfg.ExpandMaxPapers,
				Delay:                cfg.APIDelay,
			}, log)
		}

		doc := profile.Build(researcher, papers, network, now)
		if err := os.MkdirAll(paths.Root, 0o755); err != nil {
			return fmt.Errorf("creating storage root: %w", err)
		}
		if err := doc.Save(output); err != nil {
			return err
		}
		if _, err := storage.UpdateUserRecord(paths, now); err != nil {
			log.Warn().Err(err).Msg("could not update user record")
		}

		log.Info().
			Str("path", output).
			Int("papers", doc.Publications.TotalCount).
			Int("coauthors", len(doc.Network.CoauthorRank)).
			Int("active_coauthors", len(doc.Network.ActiveCoauthors)).
			Int("second_degree", len(doc.Network.SecondDegreeRank)).
			Msg("profile written")
		return nil
	},
}

func init() {
	profileCmd.Flags().StringP("name", "n", "", "researcher full name (e.g. 'Jane Doe')")
	profileCmd.Flags().String("orcid", "", "ORCID identifier")
	profileCmd.Flags().StringP("affiliation", "a", "", "current affiliation")
	profileCmd.Flags().String("homepage", "", "personal or group homepage URL")
	profileCmd.Flags().StringSlice("arxiv-ids", nil, "known arXiv paper ids (supplements author search)")
	profileCmd.Flags().StringSliceP("categories", "c", nil, "restrict author search to these categories")
	profileCmd.Flags().Bool("expand-network", false, "also build the second-degree network (slower, more API calls)")
	profileCmd.Flags().StringP("update", "u", "", "path to an existing profile.json to refresh")
	profileCmd.Flags().StringP("output", "o", "", "output file path (default: storage researcher_profile.json, or the --update path)")
	profileCmd.Flags().String("api-base-url", "", "override the query API endpoint")

	rootCmd.AddCommand(profileCmd)
}
