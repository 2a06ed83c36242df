// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	profileVersion       = 1
	maxStoredPaperIDs    = 200
	maxRecentPapers      = 20
	maxPrimaryCategories = 6
)

// Researcher identifies the profile subject. All fields beyond the name
// are caller-supplied and optional.
type Researcher struct {
	Name        string `json:"name"`
	ORCID       string `json:"orcid"`
	Affiliation string `json:"affiliation"`
	Homepage    string `json:"homepage"`
}

// RecentPaper is a compact listing entry in the publications block.
type RecentPaper struct {
	ArxivID string `json:"arxiv_id"`
	Title   string `json:"title"`
	Year    string `json:"year"`
}

// Publications summarizes the researcher's own papers.
type Publications struct {
	TotalCount        int            `json:"total_count"`
	PaperIDs          []string       `json:"paper_ids"`
	RecentPapers      []RecentPaper  `json:"recent_papers"`
	PrimaryCategories []string       `json:"primary_categories"`
	PublicationYears  map[string]int `json:"publication_years"`
}

// NetworkDoc is the network block of the profile document.
type NetworkDoc struct {
	Coauthors        map[string]CoauthorStats `json:"coauthors"`
	CoauthorRank     []string                 `json:"coauthor_rank"`
	ActiveCoauthors  []string                 `json:"active_coauthors"`
	SecondDegree     map[string]int           `json:"second_degree"`
	SecondDegreeRank []string                 `json:"second_degree_rank"`
}

// Fingerprint is the research_fingerprint block.
type Fingerprint struct {
	TopicKeywords    map[string]float64 `json:"topic_keywords"`
	ActiveCategories map[string]int     `json:"active_categories"`
}

// Profile is the researcher profile JSON document consumed by the storage
// layer.
type Profile struct {
	Version      int          `json:"version"`
	Researcher   Researcher   `json:"researcher"`
	Publications Publications `json:"publications"`
	Network      NetworkDoc   `json:"network"`
	Fingerprint  Fingerprint  `json:"research_fingerprint"`
	BuiltAt      string       `json:"built_at"`
}

// Build assembles a profile document from a researcher's papers and their
// collaboration network.
func Build(r Researcher, papers []types.Paper, network *Network, now time.Time) *Profile {
	ids := make([]string, 0, len(papers))
	for _, p := range papers {
		ids = append(ids, p.ID)
	}
	if len(ids) > maxStoredPaperIDs {
		ids = ids[:maxStoredPaperIDs]
	}

	recent := make([]RecentPaper, 0, maxRecentPapers)
	for _, p := range papers {
		if len(recent) == maxRecentPapers {
			break
		}
		year := ""
		if m := publishedYear.FindStringSubmatch(p.Published); m != nil {
			year = m[1]
		}
		recent = append(recent, RecentPaper{ArxivID: p.ID, Title: p.Title, Year: year})
	}

	return &Profile{
		Version:    profileVersion,
		Researcher: r,
		Publications: Publications{
			TotalCount:        len(papers),
			PaperIDs:          ids,
			RecentPapers:      recent,
			PrimaryCategories: primaryCategories(network.ActiveCategories),
			PublicationYears:  network.PublicationYears,
		},
		Network: NetworkDoc{
			Coauthors:        network.Coauthors,
			CoauthorRank:     network.CoauthorRank,
			ActiveCoauthors:  network.ActiveCoauthors,
			SecondDegree:     network.SecondDegree,
			SecondDegreeRank: network.SecondDegreeRank,
		},
		Fingerprint: Fingerprint{
			TopicKeywords:    network.TopicKeywords,
			ActiveCategories: network.ActiveCategories,
		},
		BuiltAt: now.Format(time.RFC3339),
	}
}

// primaryCategories returns the most frequent categories, most active
// first, capped to six.
func primaryCategories(counts map[string]int) []string {
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
	if len(names) > maxPrimaryCategories {
		names = names[:maxPrimaryCategories]
	}
	return names
}

// Load reads a profile document from disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

// Save writes the profile document as indented JSON, creating the parent
// directory if needed.
func (p *Profile) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}
