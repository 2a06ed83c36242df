// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves arXiv paper metadata across three strategies
// (the query API, the daily announcement feed, and HTML listing pages)
// and unifies the results into canonical records.
package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Fetcher drives the retrieval strategies with automatic fallback when the
// preferred path errors or returns nothing.
type Fetcher struct {
	client *http.Client
	cfg    types.FetchConfig
	log    zerolog.Logger

	// sleep implements the politeness delays; tests substitute a no-op.
	sleep func(time.Duration)

	// now supplies the reference time for relative periods.
	now func() time.Time
}

// New returns a Fetcher using the given HTTP client and configuration.
func New(client *http.Client, cfg types.FetchConfig, log zerolog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client: client,
		cfg:    cfg,
		log:    log,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// FetchPapers resolves the period expression, fetches with the documented
// fallback ordering, deduplicates by version-stripped identifier, and
// filters replacements unless includeReplacements is set. A fully failed
// fetch yields an empty list rather than an error; the caller decides
// whether that is fatal.
func (f *Fetcher) FetchPapers(ctx context.Context, categories []string, period string, includeReplacements bool) ([]types.Paper, error) {
	mode, from, to := ParsePeriod(period, f.now())

	var papers []types.Paper
	switch mode {
	case ModeToday:
		f.log.Info().Strs("categories", categories).Msg("fetching today's announcements from feed")
		var err error
		papers, err = f.fetchFeedToday(ctx, categories)
		if err != nil {
			f.log.Warn().Err(err).Msg("feed fetch failed")
		}
		if len(papers) == 0 {
			f.log.Info().Msg("feed empty or failed, falling back to HTML listing of the new page")
			papers, err = f.fetchListing(ctx, categories, "new")
			if err != nil {
				f.log.Warn().Err(err).Msg("HTML fallback also failed")
			}
		}

	case ModeDateRange:
		f.log.Info().Str("from", from).Str("to", to).Msg("fetching date range from API")
		var err error
		papers, err = f.fetchAPIDateRange(ctx, categories, from, to)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			// A name-resolution failure stops further chunks, but the
			// listing fallback targets a different host that may still
			// resolve.
			f.log.Warn().Err(err).Msg("API fetch failed")
		}
		if len(papers) == 0 {
			f.log.Info().Msg("API empty or failed, falling back to HTML listing of the recent page")
			papers, err = f.fetchListing(ctx, categories, "recent")
			if err != nil {
				f.log.Warn().Err(err).Msg("HTML fallback also failed")
			}
		}

	case ModeHTMLPage:
		f.log.Info().Str("page", from).Msg("fetching HTML listing page")
		var err error
		papers, err = f.fetchListing(ctx, categories, from)
		if err != nil {
			f.log.Warn().Err(err).Msg("HTML listing fetch failed")
		}
	}

	papers = Deduplicate(papers)
	if !includeReplacements {
		papers = FilterNewOnly(papers)
	}

	f.log.Info().Int("count", len(papers)).Msg("total unique papers")
	return papers, nil
}

// Deduplicate removes records sharing a version-stripped identifier,
// keeping the first occurrence in input order.
func Deduplicate(papers []types.Paper) []types.Paper {
	seen := make(map[string]bool, len(papers))
	unique := papers[:0:0]
	for _, p := range papers {
		key := types.StripVersion(p.ID)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	return unique
}

// FilterNewOnly drops replacement records, keeping new submissions,
// cross-lists, and untyped records.
func FilterNewOnly(papers []types.Paper) []types.Paper {
	kept := papers[:0:0]
	for _, p := range papers {
		if !p.IsReplacement() {
			kept = append(kept, p)
		}
	}
	return kept
}
