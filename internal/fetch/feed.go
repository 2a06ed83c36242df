// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// embeddedAuthors recovers an author list from feed entries that omit
// structured author data but embed "Authors: A, B, C" in the abstract.
var embeddedAuthors = regexp.MustCompile(`(?i)authors?:\s*([^\n<]+)`)

// ParseFeed parses one day's announcement batch from the Atom feed into
// canonical records. A malformed entry is skipped and logged.
func ParseFeed(raw string, log zerolog.Logger) ([]types.Paper, error) {
	var feed atomFeed
	if err := xml.Unmarshal([]byte(raw), &feed); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		p, ok := paperFromEntry(entry)
		if !ok {
			log.Warn().Str("title", entry.Title).Msg("skipping feed entry without identifier")
			continue
		}

		// Feed entries sometimes carry authors only inside the summary.
		if len(p.Authors) == 0 && p.Abstract != "" {
			if m := embeddedAuthors.FindStringSubmatch(p.Abstract); m != nil {
				for _, name := range strings.Split(m[1], ",") {
					if name = strings.TrimSpace(name); name != "" {
						p.Authors = append(p.Authors, name)
					}
				}
			}
		}

		// Announce type from the arXiv extension element; absent means a
		// new submission.
		if t := strings.TrimSpace(entry.AnnounceType); t != "" {
			p.AnnounceType = t
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// fetchFeedToday fetches the combined daily feed for all categories in one
// request; arXiv accepts category tags joined with '+' in the path.
func (f *Fetcher) fetchFeedToday(ctx context.Context, categories []string) ([]types.Paper, error) {
	u := fmt.Sprintf("%s/%s", f.cfg.FeedBaseURL, strings.Join(categories, "+"))
	f.log.Info().Str("url", u).Msg("fetching announcement feed")

	raw, err := httputil.Fetch(ctx, f.client, u, f.cfg.HTTPConfig, f.log)
	if err != nil {
		return nil, err
	}

	papers, err := ParseFeed(raw, f.log)
	if err != nil {
		return nil, err
	}
	f.log.Info().Int("count", len(papers)).Msg("feed entries parsed")
	return papers, nil
}
