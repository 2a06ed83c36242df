// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Atom document structures shared by the query API and the daily feed.
// Element matching is by local name, so the Atom, arXiv-extension, and
// OpenSearch namespaces all resolve without explicit prefixes.
type atomFeed struct {
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string `xml:"id"`
	Title           string `xml:"title"`
	Summary         string `xml:"summary"`
	Published       string `xml:"published"`
	Updated         string `xml:"updated"`
	Comment         string `xml:"comment"`
	JournalRef      string `xml:"journal_ref"`
	DOI             string `xml:"doi"`
	AnnounceType    string `xml:"announce_type"`
	PrimaryCategory struct {
		Term string `xml:"term,attr"`
	} `xml:"primary_category"`
	Authors []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
}

// extractID pulls the arXiv identifier from an entry's self-referential
// <id> URI (e.g. "http://arxiv.org/abs/2511.10616v1" → "2511.10616v1").
// The version suffix is stripped later by the record normalizer.
func extractID(idURI string) string {
	const marker = "/abs/"
	if idx := strings.Index(idURI, marker); idx >= 0 {
		return idURI[idx+len(marker):]
	}
	return idURI
}

// ParseAPIResponse parses a query-API result page into canonical records
// plus the reported total-result count. A malformed entry is skipped and
// logged, never fatal to the batch.
func ParseAPIResponse(raw string, log zerolog.Logger) (total int, entries int, papers []types.Paper, err error) {
	var feed atomFeed
	if err := xml.Unmarshal([]byte(raw), &feed); err != nil {
		return 0, 0, nil, fmt.Errorf("parsing API response: %w", err)
	}

	for _, entry := range feed.Entries {
		p, ok := paperFromEntry(entry)
		if !ok {
			log.Warn().Str("title", entry.Title).Msg("skipping API entry without identifier")
			continue
		}
		papers = append(papers, p)
	}
	return feed.TotalResults, len(feed.Entries), papers, nil
}

// paperFromEntry converts one Atom entry into a canonical record. Entries
// without an identifier are rejected.
func paperFromEntry(entry atomEntry) (types.Paper, bool) {
	id := extractID(strings.TrimSpace(entry.ID))
	if id == "" {
		return types.Paper{}, false
	}

	var authors []string
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	var categories []string
	for _, c := range entry.Categories {
		if c.Term != "" {
			categories = append(categories, c.Term)
		}
	}

	p := types.NewPaper(id, entry.Title, entry.Summary, authors, categories)
	if entry.PrimaryCategory.Term != "" {
		p.PrimaryCategory = entry.PrimaryCategory.Term
	}
	p.Published = entry.Published
	p.Updated = entry.Updated
	p.Comment = types.CollapseWhitespace(entry.Comment)
	p.JournalRef = types.CollapseWhitespace(entry.JournalRef)
	p.DOI = strings.TrimSpace(entry.DOI)
	return p, true
}

// fetchAPIDateRange queries the API once per category over [from, to],
// splitting the span into chunks of cfg.ChunkDays and paginating each
// chunk until the reported total is exhausted. A failed chunk is skipped
// with a warning unless the failure is a name-resolution failure, which
// aborts immediately.
func (f *Fetcher) fetchAPIDateRange(ctx context.Context, categories []string, from, to string) ([]types.Paper, error) {
	chunks := chunkRange(from, to, f.cfg.ChunkDays)

	var papers []types.Paper
	first := true
	for _, cat := range categories {
		for _, chunk := range chunks {
			// Mandatory spacing between chunk queries and between
			// categories, success or failure.
			if !first {
				f.sleep(f.cfg.APIDelay)
			}
			first = false

			query := fmt.Sprintf("cat:%s+AND+submittedDate:[%s0000+TO+%s2359]", cat, chunk.From, chunk.To)
			f.log.Info().Str("category", cat).Str("from", chunk.From).Str("to", chunk.To).Msg("API chunk query")

			chunkPapers, err := f.paginateQuery(ctx, query, 0)
			if err != nil {
				if httputil.IsNameResolution(err) || ctx.Err() != nil {
					return papers, err
				}
				f.log.Warn().Str("category", cat).Str("from", chunk.From).Str("to", chunk.To).
					Err(err).Msg("chunk failed, skipping")
				continue
			}
			papers = append(papers, chunkPapers...)
		}
	}
	return papers, nil
}

// SearchAuthorPapers queries the API for papers by an author, optionally
// restricted to categories, paginating up to maxPapers results.
func (f *Fetcher) SearchAuthorPapers(ctx context.Context, name string, maxPapers int, categories []string) ([]types.Paper, error) {
	query := fmt.Sprintf("au:%q", name)
	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, c := range categories {
			cats[i] = "cat:" + c
		}
		query = fmt.Sprintf("%s AND (%s)", query, strings.Join(cats, " OR "))
	}
	f.log.Info().Str("author", name).Msg("searching author papers")
	return f.paginateQuery(ctx, url.QueryEscape(query), maxPapers)
}

// FetchByIDs retrieves specific papers via the id_list parameter, in
// batches of 50.
func (f *Fetcher) FetchByIDs(ctx context.Context, ids []string) ([]types.Paper, error) {
	const batchSize = 50

	var papers []types.Paper
	for i := 0; i < len(ids); i += batchSize {
		if i > 0 {
			f.sleep(f.cfg.APIDelay)
		}
		batch := ids[i:min(i+batchSize, len(ids))]
		u := fmt.Sprintf("%s?id_list=%s&max_results=%d",
			f.cfg.APIBaseURL, url.QueryEscape(strings.Join(batch, ",")), len(batch))
		f.log.Info().Int("batch", len(batch)).Msg("fetching papers by id")

		raw, err := httputil.Fetch(ctx, f.client, u, f.cfg.HTTPConfig, f.log)
		if err != nil {
			return papers, err
		}
		_, _, page, err := ParseAPIResponse(raw, f.log)
		if err != nil {
			return papers, err
		}
		papers = append(papers, page...)
	}
	return papers, nil
}

// paginateQuery walks a search query page by page until the reported
// total (or maxPapers when positive) is exhausted, sleeping the polite
// API delay between pages.
func (f *Fetcher) paginateQuery(ctx context.Context, escapedQuery string, maxPapers int) ([]types.Paper, error) {
	var papers []types.Paper
	start := 0
	total := -1

	for {
		pageSize := f.cfg.MaxResultsPerQuery
		if maxPapers > 0 && maxPapers-start < pageSize {
			pageSize = maxPapers - start
		}
		u := fmt.Sprintf("%s?search_query=%s&start=%d&max_results=%d&sortBy=submittedDate&sortOrder=descending",
			f.cfg.APIBaseURL, escapedQuery, start, pageSize)

		raw, err := httputil.Fetch(ctx, f.client, u, f.cfg.HTTPConfig, f.log)
		if err != nil {
			return papers, err
		}

		pageTotal, entries, page, err := ParseAPIResponse(raw, f.log)
		if err != nil {
			return papers, err
		}
		if total < 0 {
			total = pageTotal
			if maxPapers > 0 && maxPapers < total {
				total = maxPapers
			}
			f.log.Info().Int("total", pageTotal).Msg("reported total results")
			if total == 0 {
				break
			}
		}
		if entries == 0 {
			break
		}

		papers = append(papers, page...)
		start += entries
		if start >= total {
			break
		}
		f.sleep(f.cfg.APIDelay)
	}
	return papers, nil
}
