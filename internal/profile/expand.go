// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// AuthorSearcher retrieves an author's papers; the retrieval orchestrator
// implements it via the API query path.
type AuthorSearcher interface {
	SearchAuthorPapers(ctx context.Context, name string, maxPapers int, categories []string) ([]types.Paper, error)
}

// ExpandOptions bound the second-degree expansion. Zero values take the
// defaults (top 10 collaborators, 50 papers each).
type ExpandOptions struct {
	TopN                 int
	MaxPapersPerCoauthor int

	// Delay is the politeness spacing between expansion fetches.
	Delay time.Duration

	// Sleep defaults to time.Sleep; tests substitute a no-op.
	Sleep func(time.Duration)
}

const (
	defaultExpandTopN      = 10
	defaultExpandMaxPapers = 50
	secondDegreeKeep       = 200
	secondDegreeExpose     = 100
)

// ExpandSecondDegree fetches the papers of the top first-degree
// co-authors and accumulates their co-authors into the network's
// second-degree set, excluding anyone already in the first degree. A
// failure fetching one collaborator's papers skips that collaborator and
// continues. Explicit opt-in: this makes one API search per collaborator.
func ExpandSecondDegree(ctx context.Context, searcher AuthorSearcher, n *Network, opts ExpandOptions, log zerolog.Logger) {
	if opts.TopN <= 0 {
		opts.TopN = defaultExpandTopN
	}
	if opts.MaxPapersPerCoauthor <= 0 {
		opts.MaxPapersPerCoauthor = defaultExpandMaxPapers
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	top := n.CoauthorRank
	if len(top) > opts.TopN {
		top = top[:opts.TopN]
	}

	counts := make(map[string]int)
	var order []string

	for _, coauthor := range top {
		log.Info().Str("coauthor", coauthor).Msg("expanding second-degree network")
		papers, err := searcher.SearchAuthorPapers(ctx, coauthor, opts.MaxPapersPerCoauthor, nil)
		if err != nil {
			log.Warn().Str("coauthor", coauthor).Err(err).Msg("expansion fetch failed, skipping collaborator")
			continue
		}
		for _, paper := range papers {
			for _, author := range paper.Authors {
				if SamePerson(coauthor, author) {
					continue
				}
				if _, seen := counts[author]; !seen {
					order = append(order, author)
				}
				counts[author]++
			}
		}
		if opts.Delay > 0 {
			opts.Sleep(opts.Delay)
		}
	}

	ranked := append([]string(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > secondDegreeKeep {
		ranked = ranked[:secondDegreeKeep]
	}

	// Subtract everyone already in the first-degree set.
	firstDegree := make(map[string]bool, len(n.CoauthorRank))
	for _, name := range n.CoauthorRank {
		firstDegree[name] = true
	}

	n.SecondDegree = make(map[string]int)
	n.SecondDegreeRank = nil
	for _, name := range ranked {
		if firstDegree[name] {
			continue
		}
		n.SecondDegree[name] = counts[name]
		n.SecondDegreeRank = append(n.SecondDegreeRank, name)
		if len(n.SecondDegreeRank) == secondDegreeExpose {
			break
		}
	}
}
