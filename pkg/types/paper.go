// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline.
package types

import (
	"regexp"
	"strings"
)

// Announce types as reported by the arXiv daily feeds. Papers without an
// announce type are treated as new submissions.
const (
	AnnounceNew         = "new"
	AnnounceCross       = "cross"
	AnnounceCrossList   = "cross-list"
	AnnounceReplacement = "replacement"
)

// Paper is the canonical record every source parser produces. Field names
// match the JSON documents consumed by the storage layer.
type Paper struct {
	// ID is the arXiv identifier with any version suffix stripped
	// (e.g. "2511.10616", never "2511.10616v2").
	ID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title and Abstract are whitespace-collapsed: every run of
	// whitespace, including newlines, reduced to a single space.
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists display names in authorship order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists classification tags; the first is the implicit
	// primary category when the source reports no explicit one.
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the explicit primary tag if the source reports
	// one, else the first of Categories, else empty.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Published and Updated are timestamp strings as reported by the
	// source; downstream code only ever extracts the year prefix.
	Published string `json:"published" yaml:"published"`
	Updated   string `json:"updated" yaml:"updated"`

	Comment    string `json:"comment" yaml:"comment"`
	JournalRef string `json:"journal_ref" yaml:"journal_ref"`
	DOI        string `json:"doi" yaml:"doi"`

	// AnnounceType is one of "new", "cross", "cross-list", "replacement",
	// or empty; sources that report none get "new".
	AnnounceType string `json:"announce_type" yaml:"announce_type"`
}

var versionSuffix = regexp.MustCompile(`v\d+$`)

// StripVersion removes a trailing version suffix from an arXiv identifier.
// Stripping an already-stripped identifier is a no-op.
func StripVersion(id string) string {
	return versionSuffix.ReplaceAllString(id, "")
}

// CollapseWhitespace reduces every run of whitespace to a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewPaper builds a normalized record from heterogeneous parsed fields:
// the identifier loses its version suffix, title and abstract collapse
// whitespace, the primary category defaults to the first category, and an
// empty announce type defaults to "new".
func NewPaper(id, title, abstract string, authors, categories []string) Paper {
	p := Paper{
		ID:           StripVersion(strings.TrimSpace(id)),
		Title:        CollapseWhitespace(title),
		Abstract:     CollapseWhitespace(abstract),
		Authors:      authors,
		Categories:   categories,
		AnnounceType: AnnounceNew,
	}
	if len(categories) > 0 {
		p.PrimaryCategory = categories[0]
	}
	return p
}

// IsReplacement reports whether the record should be dropped when the
// caller excludes replacements. New, cross-listed, and untyped records
// always pass.
func (p Paper) IsReplacement() bool {
	switch p.AnnounceType {
	case AnnounceNew, AnnounceCross, AnnounceCrossList, "":
		return false
	}
	return true
}
