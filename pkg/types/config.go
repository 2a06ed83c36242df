// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every stage that makes
// network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Retries is the per-candidate-URL retry budget.
	Retries int `json:"retries" yaml:"retries"`
}

// FetchConfig holds settings for the retrieval orchestrator.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBaseURL is the arXiv query API endpoint.
	APIBaseURL string `json:"api_base_url" yaml:"api_base_url"`

	// FeedBaseURL is the daily Atom announcement feed endpoint.
	FeedBaseURL string `json:"feed_base_url" yaml:"feed_base_url"`

	// ListBaseURL is the HTML listing endpoint.
	ListBaseURL string `json:"list_base_url" yaml:"list_base_url"`

	// MaxResultsPerQuery bounds a single API page (arXiv caps at 200).
	MaxResultsPerQuery int `json:"max_results_per_query" yaml:"max_results_per_query"`

	// ChunkDays splits long date ranges into sub-queries of this many
	// days (default 7, minimum 1).
	ChunkDays int `json:"chunk_days" yaml:"chunk_days"`

	// APIDelay is the mandatory spacing between paginated API requests
	// and between categories (arXiv asks for 3 s).
	APIDelay time.Duration `json:"api_delay" yaml:"api_delay"`

	// ListDelay is the spacing between HTML listing fetches.
	ListDelay time.Duration `json:"list_delay" yaml:"list_delay"`
}

// DefaultFetchConfig returns the production endpoints and politeness
// settings.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "arxiv-digest/1.0",
			Retries:   2,
		},
		APIBaseURL:         "https://export.arxiv.org/api/query",
		FeedBaseURL:        "https://rss.arxiv.org/atom",
		ListBaseURL:        "https://arxiv.org/list",
		MaxResultsPerQuery: 200,
		ChunkDays:          7,
		APIDelay:           3100 * time.Millisecond,
		ListDelay:          time.Second,
	}
}

// ProfileConfig holds settings for profile building.
type ProfileConfig struct {
	// MaxPapers caps the author search for the profile subject.
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// ExpandTopN is how many first-degree co-authors the second-degree
	// expansion visits.
	ExpandTopN int `json:"expand_top_n" yaml:"expand_top_n"`

	// ExpandMaxPapers caps the author search per visited co-author.
	ExpandMaxPapers int `json:"expand_max_papers" yaml:"expand_max_papers"`
}

// DefaultProfileConfig returns the standard profile-building limits.
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		MaxPapers:       300,
		ExpandTopN:      10,
		ExpandMaxPapers: 50,
	}
}
