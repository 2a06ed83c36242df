// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"testing"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestSamePerson(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Jane Doe", "Jane Doe", true},
		{"jane doe", "JANE DOE", true},
		{"Jane Doe", "J. Doe", true},
		{"J. Doe", "Jane Doe", true},
		{"J Doe", "Jane Doe", true},
		{"Jane Doe", "John Doe", false},
		{"Jane Smith", "Jane Doe", false},
		{"Jane Doe", "Jane", false},
		{"Jane", "Jane Doe", false},
		{"Jane Marie Doe", "J. Doe", true},
		{"", "", true},
		{"Jane Doe", "", false},
	}
	for _, tt := range tests {
		if got := SamePerson(tt.a, tt.b); got != tt.want {
			t.Errorf("SamePerson(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPaperYear(t *testing.T) {
	tests := []struct {
		name string
		p    types.Paper
		want string
	}{
		{"from published", types.Paper{ID: "2511.00001", Published: "2024-03-01T00:00:00Z"}, "2024"},
		{"from id", types.Paper{ID: "2511.00001"}, "2025"},
		{"published wins", types.Paper{ID: "2511.00001", Published: "2023-01-01"}, "2023"},
		{"pre-2007 id", types.Paper{ID: "astro-ph/0601001"}, ""},
		{"no sources", types.Paper{}, ""},
	}
	for _, tt := range tests {
		if got := paperYear(tt.p); got != tt.want {
			t.Errorf("%s: paperYear = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBuildNetwork(t *testing.T) {
	now := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	papers := []types.Paper{
		{
			ID:         "2501.00001",
			Title:      "Dark matter halos",
			Abstract:   "We study dark matter.",
			Authors:    []string{"Jane Doe", "J. Smith", "Alice Ng"},
			Categories: []string{"astro-ph.CO"},
			Published:  "2025-01-10T00:00:00Z",
		},
		{
			ID:         "2403.00002",
			Title:      "Dark energy constraints",
			Abstract:   "Constraints on dark energy.",
			Authors:    []string{"Jane Doe", "J. Smith"},
			Categories: []string{"astro-ph.CO", "gr-qc"},
			Published:  "2024-03-05T00:00:00Z",
		},
		{
			ID:         "1901.00003",
			Title:      "An old result",
			Abstract:   "",
			Authors:    []string{"Jane Doe", "Bob Wu"},
			Categories: []string{"gr-qc"},
			Published:  "2019-01-02T00:00:00Z",
		},
	}

	n := BuildNetwork(papers, "Jane Doe", now)

	// The subject's own name never appears as a co-author.
	if _, ok := n.Coauthors["Jane Doe"]; ok {
		t.Error("subject listed as own co-author")
	}

	smith := n.Coauthors["J. Smith"]
	if smith.Count != 2 {
		t.Errorf("J. Smith count = %d, want 2", smith.Count)
	}
	if smith.LastYear != 2025 {
		t.Errorf("J. Smith last year = %d, want 2025", smith.LastYear)
	}
	if len(smith.Papers) != 2 || smith.Papers[0] != "2501.00001" {
		t.Errorf("J. Smith papers = %v", smith.Papers)
	}

	if len(n.CoauthorRank) != 3 || n.CoauthorRank[0] != "J. Smith" {
		t.Errorf("rank = %v, want J. Smith first", n.CoauthorRank)
	}
	// Alice Ng and Bob Wu tie at one paper each; first-encountered order
	// breaks the tie.
	if n.CoauthorRank[1] != "Alice Ng" || n.CoauthorRank[2] != "Bob Wu" {
		t.Errorf("rank tie order = %v", n.CoauthorRank[1:])
	}

	// Bob Wu's last shared paper is 2019, outside the active window.
	if len(n.ActiveCoauthors) != 2 {
		t.Errorf("active = %v, want Bob Wu excluded", n.ActiveCoauthors)
	}
	for _, name := range n.ActiveCoauthors {
		if name == "Bob Wu" {
			t.Error("Bob Wu should not be active")
		}
	}

	// "dark" appears in two titles (1.0 each) and two abstracts (0.3 each).
	if got := n.TopicKeywords["dark"]; got != 2.6 {
		t.Errorf("dark weight = %v, want 2.6", got)
	}
	// "halos" appears once in a title.
	if got := n.TopicKeywords["halos"]; got != 1.0 {
		t.Errorf("halos weight = %v, want 1.0", got)
	}

	if n.ActiveCategories["astro-ph.CO"] != 2 || n.ActiveCategories["gr-qc"] != 2 {
		t.Errorf("categories = %v", n.ActiveCategories)
	}
	if n.PublicationYears["2025"] != 1 || n.PublicationYears["2024"] != 1 || n.PublicationYears["2019"] != 1 {
		t.Errorf("years = %v", n.PublicationYears)
	}
}

func TestBuildNetworkKeywordRounding(t *testing.T) {
	papers := []types.Paper{
		{ID: "2501.00001", Abstract: "wavelets"},
		{ID: "2501.00002", Abstract: "wavelets"},
	}
	n := BuildNetwork(papers, "Jane Doe", time.Now())
	// Two abstract hits: 0.3 + 0.3 rounds to 0.6 exactly.
	if got := n.TopicKeywords["wavelets"]; got != 0.6 {
		t.Errorf("wavelets weight = %v, want 0.6", got)
	}
}

func TestBuildNetworkTitleAndAbstractWeights(t *testing.T) {
	papers := []types.Paper{
		{ID: "2501.00001", Title: "Quasar spectra"},
		{ID: "2501.00002", Abstract: "A quasar sample."},
	}
	n := BuildNetwork(papers, "Jane Doe", time.Now())
	// One title hit plus one abstract hit: 1.0 + 0.3 = 1.3.
	if got := n.TopicKeywords["quasar"]; got != 1.3 {
		t.Errorf("quasar weight = %v, want 1.3", got)
	}
}

func TestBuildNetworkExcludesOwnNameVariants(t *testing.T) {
	now := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	papers := []types.Paper{
		{ID: "2501.00001", Authors: []string{"Jane Doe", "J. Smith"}, Published: "2025-01-01"},
		{ID: "2401.00002", Authors: []string{"J. Doe", "J. Smith"}, Published: "2024-01-01"},
	}

	n := BuildNetwork(papers, "Jane Doe", now)

	// "J. Doe" is the subject under a different name form; only J. Smith
	// remains, credited with both shared papers.
	if len(n.CoauthorRank) != 1 || n.CoauthorRank[0] != "J. Smith" {
		t.Fatalf("rank = %v, want only J. Smith", n.CoauthorRank)
	}
	if n.Coauthors["J. Smith"].Count != 2 {
		t.Errorf("count = %d, want 2", n.Coauthors["J. Smith"].Count)
	}
}

func TestBuildNetworkEmptyInput(t *testing.T) {
	n := BuildNetwork(nil, "Jane Doe", time.Now())
	if len(n.CoauthorRank) != 0 || len(n.TopicKeywords) != 0 {
		t.Errorf("network not empty: %+v", n)
	}
}

func TestTopCategories(t *testing.T) {
	counts := map[string]int{"a": 3, "b": 1, "c": 3, "d": 2}
	top := topCategories(counts, 3)
	if len(top) != 3 {
		t.Fatalf("got %d categories, want 3", len(top))
	}
	// Ties break alphabetically, so "a" and "c" both survive; "b" drops.
	if _, ok := top["b"]; ok {
		t.Errorf("top = %v, want lowest count dropped", top)
	}
}

func TestExtractKeywords(t *testing.T) {
	words := ExtractKeywords("The dark-matter halo of M31, revisited")
	want := map[string]bool{"dark-matter": true, "halo": true, "m31": true, "revisited": true}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for _, w := range words {
		if !want[w] {
			t.Errorf("unexpected keyword %q", w)
		}
	}
}
