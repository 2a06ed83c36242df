// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/2511.11111v1</id>
    <title>New Submission</title>
    <summary>A fresh result.</summary>
    <arxiv:announce_type>new</arxiv:announce_type>
    <author><name>Jane Doe</name></author>
    <category term="astro-ph.CO"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2511.22222v3</id>
    <title>Replaced Paper</title>
    <summary>Updated version.</summary>
    <arxiv:announce_type>replace</arxiv:announce_type>
    <author><name>J. Smith</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2511.33333v1</id>
    <title>No Structured Authors</title>
    <summary>arXiv:2511.33333 Announce Type: new Authors: Alice Ng, Bob Wu Results follow.</summary>
  </entry>
</feed>`

func TestParseFeed(t *testing.T) {
	papers, err := ParseFeed(sampleFeed, zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("got %d papers, want 3", len(papers))
	}

	if papers[0].AnnounceType != "new" {
		t.Errorf("AnnounceType = %q, want new", papers[0].AnnounceType)
	}
	if papers[1].AnnounceType != "replace" {
		t.Errorf("AnnounceType = %q, want replace", papers[1].AnnounceType)
	}
	if papers[1].IsReplacement() != true {
		t.Error("replace entry should be a replacement")
	}
}

func TestParseFeedDefaultAnnounceType(t *testing.T) {
	raw := `<feed xmlns="http://www.w3.org/2005/Atom">
<entry><id>http://arxiv.org/abs/2511.44444v1</id><title>t</title></entry>
</feed>`
	papers, err := ParseFeed(raw, zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(papers) != 1 || papers[0].AnnounceType != "new" {
		t.Errorf("papers = %+v, want announce type defaulted to new", papers)
	}
}

func TestParseFeedRecoversEmbeddedAuthors(t *testing.T) {
	papers, err := ParseFeed(sampleFeed, zerolog.Nop())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	p := papers[2]
	if len(p.Authors) != 2 || p.Authors[0] != "Alice Ng" || p.Authors[1] != "Bob Wu Results follow." {
		t.Errorf("Authors = %v, want recovered from abstract text", p.Authors)
	}
}

func TestFetchFeedTodayJoinsCategories(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, sampleFeed)
	}))
	defer ts.Close()

	f := testFetcher(t, ts.URL)
	papers, err := f.fetchFeedToday(context.Background(), []string{"astro-ph.CO", "gr-qc"})
	if err != nil {
		t.Fatalf("fetchFeedToday: %v", err)
	}
	if gotPath != "/astro-ph.CO+gr-qc" {
		t.Errorf("path = %q, want categories joined with +", gotPath)
	}
	if len(papers) != 3 {
		t.Errorf("got %d papers, want 3", len(papers))
	}
}
