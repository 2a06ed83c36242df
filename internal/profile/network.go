// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile builds researcher collaboration networks and profile
// documents from canonical paper records.
package profile

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	maxCoauthors       = 100
	maxActiveCoauthors = 50
	maxTopics          = 50
	maxCategories      = 20
	maxExamplePapers   = 10

	// activeWindowYears is the trailing window for "active" co-authors.
	activeWindowYears = 3
)

// CoauthorStats aggregates one co-author's shared publication history.
type CoauthorStats struct {
	// Count is the number of shared papers.
	Count int `json:"count"`

	// LastYear is the most recent publication year among shared papers,
	// 0 when no year could be derived.
	LastYear int `json:"last_year"`

	// Papers holds up to ten example shared paper ids.
	Papers []string `json:"papers"`
}

// Network is the collaboration profile derived from one researcher's
// paper list.
type Network struct {
	Coauthors        map[string]CoauthorStats `json:"coauthors"`
	CoauthorRank     []string                 `json:"coauthor_rank"`
	ActiveCoauthors  []string                 `json:"active_coauthors"`
	TopicKeywords    map[string]float64       `json:"topic_keywords"`
	ActiveCategories map[string]int           `json:"active_categories"`
	PublicationYears map[string]int           `json:"publication_years"`
	SecondDegree     map[string]int           `json:"second_degree,omitempty"`
	SecondDegreeRank []string                 `json:"second_degree_rank,omitempty"`
}

// publishedYear matches a 4-digit year prefix of a timestamp string.
var publishedYear = regexp.MustCompile(`^(\d{4})`)

// idYear matches the YYMM numeric prefix of post-2007 identifiers.
// Pre-2007 identifier formats are not handled and yield no year.
var idYear = regexp.MustCompile(`^(\d{2})\d{2}\.`)

// paperYear derives a publication year: the 4-digit prefix of the
// published timestamp when present, else "20" plus the identifier's
// two-digit year prefix. Returns empty when neither applies.
func paperYear(p types.Paper) string {
	if m := publishedYear.FindStringSubmatch(p.Published); m != nil {
		return m[1]
	}
	if m := idYear.FindStringSubmatch(p.ID); m != nil {
		return "20" + m[1]
	}
	return ""
}

// BuildNetwork aggregates ranked co-author statistics, topic keywords, and
// category/year histograms from a researcher's papers. Ranking is
// deterministic: descending by count with ties kept in first-encountered
// order.
func BuildNetwork(papers []types.Paper, userName string, now time.Time) *Network {
	coauthors := make(map[string]*CoauthorStats)
	var coauthorOrder []string

	topics := make(map[string]float64)
	var topicOrder []string
	addTopic := func(word string, weight float64) {
		if _, seen := topics[word]; !seen {
			topicOrder = append(topicOrder, word)
		}
		topics[word] += weight
	}

	categoryCounts := make(map[string]int)
	yearCounts := make(map[string]int)

	for _, paper := range papers {
		year := paperYear(paper)
		if year != "" {
			yearCounts[year]++
		}
		for _, cat := range paper.Categories {
			categoryCounts[cat]++
		}

		for _, author := range paper.Authors {
			// Skip the researcher's own name variants.
			if SamePerson(userName, author) {
				continue
			}
			stats, ok := coauthors[author]
			if !ok {
				stats = &CoauthorStats{}
				coauthors[author] = stats
				coauthorOrder = append(coauthorOrder, author)
			}
			stats.Count++
			if len(stats.Papers) < maxExamplePapers {
				stats.Papers = append(stats.Papers, paper.ID)
			}
			if y := atoiSafe(year); y > stats.LastYear {
				stats.LastYear = y
			}
		}

		for _, w := range ExtractKeywords(paper.Title) {
			addTopic(w, 1.0)
		}
		for _, w := range ExtractKeywords(paper.Abstract) {
			addTopic(w, 0.3)
		}
	}

	rank := append([]string(nil), coauthorOrder...)
	sort.SliceStable(rank, func(i, j int) bool {
		return coauthors[rank[i]].Count > coauthors[rank[j]].Count
	})
	if len(rank) > maxCoauthors {
		rank = rank[:maxCoauthors]
	}

	cutoff := now.Year() - activeWindowYears
	var active []string
	for _, name := range rank {
		if coauthors[name].LastYear >= cutoff {
			active = append(active, name)
		}
	}
	if len(active) > maxActiveCoauthors {
		active = active[:maxActiveCoauthors]
	}

	topTopics := append([]string(nil), topicOrder...)
	sort.SliceStable(topTopics, func(i, j int) bool {
		return topics[topTopics[i]] > topics[topTopics[j]]
	})
	if len(topTopics) > maxTopics {
		topTopics = topTopics[:maxTopics]
	}
	keywords := make(map[string]float64, len(topTopics))
	for _, w := range topTopics {
		keywords[w] = math.Round(topics[w]*10) / 10
	}

	stored := make(map[string]CoauthorStats, len(rank))
	for _, name := range rank {
		stored[name] = *coauthors[name]
	}

	return &Network{
		Coauthors:        stored,
		CoauthorRank:     rank,
		ActiveCoauthors:  active,
		TopicKeywords:    keywords,
		ActiveCategories: topCategories(categoryCounts, maxCategories),
		PublicationYears: yearCounts,
	}
}

// topCategories keeps the n most frequent categories.
func topCategories(counts map[string]int, n int) map[string]int {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	top := make(map[string]int, len(names))
	for _, name := range names {
		top[name] = counts[name]
	}
	return top
}

// SamePerson is a fuzzy same-person check over two author display names.
// Exact lowercase match is a hit; otherwise matching surnames plus equal
// or initial-prefixed first names count as the same person. This handles
// "J. Smith" vs "John Smith" vs "Jane Smith"; imperfect but useful, and
// conflation of distinct authors sharing a surname and initial is an
// accepted limitation.
func SamePerson(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return true
	}

	partsA := strings.Fields(a)
	partsB := strings.Fields(b)
	if len(partsA) < 2 || len(partsB) < 2 {
		return false
	}
	if partsA[len(partsA)-1] != partsB[len(partsB)-1] {
		return false
	}

	firstA := strings.TrimSuffix(partsA[0], ".")
	firstB := strings.TrimSuffix(partsB[0], ".")
	if firstA == firstB {
		return true
	}
	if len(firstA) == 1 && strings.HasPrefix(firstB, firstA) {
		return true
	}
	if len(firstB) == 1 && strings.HasPrefix(firstA, firstB) {
		return true
	}
	return false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
