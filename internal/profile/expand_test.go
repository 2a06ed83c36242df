// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// fakeSearcher serves canned papers per author name and fails on demand.
type fakeSearcher struct {
	papers map[string][]types.Paper
	fail   map[string]bool
	calls  []string
}

func (f *fakeSearcher) SearchAuthorPapers(_ context.Context, name string, _ int, _ []string) ([]types.Paper, error) {
	f.calls = append(f.calls, name)
	if f.fail[name] {
		return nil, errors.New("search failed")
	}
	return f.papers[name], nil
}

func TestExpandSecondDegree(t *testing.T) {
	n := &Network{
		CoauthorRank: []string{"J. Smith", "Alice Ng"},
	}
	searcher := &fakeSearcher{
		papers: map[string][]types.Paper{
			"J. Smith": {
				{ID: "1", Authors: []string{"J. Smith", "Carol Lee", "Dan Park"}},
				{ID: "2", Authors: []string{"John Smith", "Carol Lee"}},
			},
			"Alice Ng": {
				{ID: "3", Authors: []string{"Alice Ng", "Carol Lee", "J. Smith"}},
			},
		},
	}

	ExpandSecondDegree(context.Background(), searcher, n, ExpandOptions{}, zerolog.Nop())

	// Carol Lee appears on three papers; Dan Park on one. The searched
	// collaborator's own name variants are excluded from their results,
	// but J. Smith showing up on Alice Ng's paper counts, and is then
	// removed because the first degree already holds it.
	if n.SecondDegree["Carol Lee"] != 3 {
		t.Errorf("Carol Lee count = %d, want 3", n.SecondDegree["Carol Lee"])
	}
	if n.SecondDegree["Dan Park"] != 1 {
		t.Errorf("Dan Park count = %d, want 1", n.SecondDegree["Dan Park"])
	}
	if _, ok := n.SecondDegree["J. Smith"]; ok {
		t.Error("first-degree co-author leaked into second degree")
	}
	if _, ok := n.SecondDegree["John Smith"]; ok {
		t.Error("searched collaborator's name variant counted")
	}
	if len(n.SecondDegreeRank) != 2 || n.SecondDegreeRank[0] != "Carol Lee" {
		t.Errorf("rank = %v, want Carol Lee first", n.SecondDegreeRank)
	}
}

func TestExpandSecondDegreeSkipsFailedCollaborator(t *testing.T) {
	n := &Network{
		CoauthorRank: []string{"J. Smith", "Alice Ng"},
	}
	searcher := &fakeSearcher{
		papers: map[string][]types.Paper{
			"Alice Ng": {{ID: "1", Authors: []string{"Alice Ng", "Carol Lee"}}},
		},
		fail: map[string]bool{"J. Smith": true},
	}

	ExpandSecondDegree(context.Background(), searcher, n, ExpandOptions{}, zerolog.Nop())

	if len(searcher.calls) != 2 {
		t.Errorf("calls = %v, want both collaborators attempted", searcher.calls)
	}
	if n.SecondDegree["Carol Lee"] != 1 {
		t.Errorf("Carol Lee count = %d, want 1", n.SecondDegree["Carol Lee"])
	}
}

func TestExpandSecondDegreeHonorsTopN(t *testing.T) {
	n := &Network{
		CoauthorRank: []string{"A A", "B B", "C C"},
	}
	searcher := &fakeSearcher{}

	ExpandSecondDegree(context.Background(), searcher, n, ExpandOptions{TopN: 2}, zerolog.Nop())

	if len(searcher.calls) != 2 {
		t.Errorf("calls = %v, want only the top 2 expanded", searcher.calls)
	}
}
