// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// listState tracks which labeled region of a listing item the scanner is
// inside.
type listState int

const (
	stateIdle listState = iota
	stateTitle
	stateAuthors
	stateAbstract
	stateSubjects
)

var (
	titlePrefix   = regexp.MustCompile(`^Title:\s*`)
	authorsPrefix = regexp.MustCompile(`^Authors:\s*`)
)

// listingScanner is a finite-state machine over the HTML token stream of
// an arXiv /list/{category}/{page} page. It accumulates text inside the
// title, authors, and abstract blocks, captures the identifier from the
// nearest preceding /abs/ anchor, and emits a record when an abstract
// block closes with both identifier and title present. This path is a
// structure-dependent fallback, not a primary source.
type listingScanner struct {
	papers []types.Paper

	state     listState
	buf       strings.Builder
	currentID string

	title   string
	authors []string
}

// ParseListing scans a listing page and returns the records it contains.
// Markup this scanner does not recognize simply yields fewer records; it
// never errors on malformed structure.
func ParseListing(raw string) []types.Paper {
	s := &listingScanner{}
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return s.papers
		case html.StartTagToken:
			s.startTag(z.Token())
		case html.EndTagToken:
			s.endTag(z.Token())
		case html.TextToken:
			if s.state != stateIdle {
				s.buf.WriteString(z.Token().Data)
			}
		}
	}
}

func attrValue(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (s *listingScanner) startTag(t html.Token) {
	switch t.Data {
	case "a":
		// Identifier from title links: /abs/XXXX.XXXXX.
		if href := attrValue(t, "href"); strings.HasPrefix(href, "/abs/") {
			s.currentID = strings.TrimSpace(strings.TrimPrefix(href, "/abs/"))
		}
	case "div":
		cls := attrValue(t, "class")
		switch {
		case strings.Contains(cls, "list-title"):
			s.state = stateTitle
			s.buf.Reset()
		case strings.Contains(cls, "list-authors"):
			s.state = stateAuthors
			s.buf.Reset()
		}
	case "p":
		if strings.Contains(attrValue(t, "class"), "mathjax") {
			s.state = stateAbstract
			s.buf.Reset()
		}
	case "span":
		if strings.Contains(attrValue(t, "class"), "primary-subject") {
			s.state = stateSubjects
			s.buf.Reset()
		}
	}
}

func (s *listingScanner) endTag(t html.Token) {
	switch {
	case t.Data == "div" && s.state == stateTitle:
		s.title = titlePrefix.ReplaceAllString(strings.TrimSpace(s.buf.String()), "")
		s.state = stateIdle

	case t.Data == "div" && s.state == stateAuthors:
		text := authorsPrefix.ReplaceAllString(strings.TrimSpace(s.buf.String()), "")
		s.authors = nil
		for _, name := range strings.Split(text, ",") {
			if name = strings.TrimSpace(name); name != "" {
				s.authors = append(s.authors, name)
			}
		}
		s.state = stateIdle

	case t.Data == "span" && s.state == stateSubjects:
		s.state = stateIdle

	case t.Data == "p" && s.state == stateAbstract:
		abstract := strings.TrimSpace(s.buf.String())
		s.state = stateIdle
		if s.currentID != "" && s.title != "" {
			s.papers = append(s.papers, types.NewPaper(s.currentID, s.title, abstract, s.authors, nil))
		}
		// Reset for the next listing item.
		s.currentID = ""
		s.title = ""
		s.authors = nil
	}
}

// fetchListing scrapes /list/{category}/{page} for each category. page is
// "new", "recent", "pastweek", or a YYMM archive identifier. Individual
// category failures are logged and skipped.
func (f *Fetcher) fetchListing(ctx context.Context, categories []string, page string) ([]types.Paper, error) {
	var papers []types.Paper
	for i, cat := range categories {
		if i > 0 {
			f.sleep(f.cfg.ListDelay)
		}
		u := fmt.Sprintf("%s/%s/%s", f.cfg.ListBaseURL, cat, page)
		f.log.Info().Str("url", u).Msg("scraping HTML listing")

		raw, err := httputil.Fetch(ctx, f.client, u, f.cfg.HTTPConfig, f.log)
		if err != nil {
			if httputil.IsNameResolution(err) || ctx.Err() != nil {
				return papers, err
			}
			f.log.Warn().Str("category", cat).Err(err).Msg("HTML scrape failed")
			continue
		}

		parsed := ParseListing(raw)
		f.log.Info().Str("category", cat).Int("count", len(parsed)).Msg("parsed listing entries")
		papers = append(papers, parsed...)
	}
	return papers, nil
}
