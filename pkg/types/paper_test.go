// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
)

func TestStripVersion(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"2511.10616v1", "2511.10616"},
		{"2511.10616v12", "2511.10616"},
		{"2511.10616", "2511.10616"},
		{"astro-ph/0601001v2", "astro-ph/0601001"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripVersion(tt.id); got != tt.want {
			t.Errorf("StripVersion(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestStripVersionIdempotent(t *testing.T) {
	once := StripVersion("2511.00001v3")
	if twice := StripVersion(once); twice != once {
		t.Errorf("StripVersion not idempotent: %q -> %q", once, twice)
	}
}

func TestNewPaperNormalization(t *testing.T) {
	p := NewPaper(
		" 2511.10616v2 ",
		"A  Study\n of   Things",
		"We\tpresent\n\nresults.",
		[]string{"Jane Doe"},
		[]string{"astro-ph.CO", "astro-ph.GA"},
	)

	if p.ID != "2511.10616" {
		t.Errorf("ID = %q, want version stripped", p.ID)
	}
	if p.Title != "A Study of Things" {
		t.Errorf("Title = %q, want whitespace collapsed", p.Title)
	}
	if p.Abstract != "We present results." {
		t.Errorf("Abstract = %q, want whitespace collapsed", p.Abstract)
	}
	if p.PrimaryCategory != "astro-ph.CO" {
		t.Errorf("PrimaryCategory = %q, want first category", p.PrimaryCategory)
	}
	if p.AnnounceType != AnnounceNew {
		t.Errorf("AnnounceType = %q, want %q", p.AnnounceType, AnnounceNew)
	}
}

func TestNewPaperNoCategories(t *testing.T) {
	p := NewPaper("2511.1", "t", "a", nil, nil)
	if p.PrimaryCategory != "" {
		t.Errorf("PrimaryCategory = %q, want empty", p.PrimaryCategory)
	}
}

func TestIsReplacement(t *testing.T) {
	tests := []struct {
		announceType string
		want         bool
	}{
		{"new", false},
		{"cross", false},
		{"cross-list", false},
		{"", false},
		{"replacement", true},
		{"replace-cross", true},
	}
	for _, tt := range tests {
		p := Paper{AnnounceType: tt.announceType}
		if got := p.IsReplacement(); got != tt.want {
			t.Errorf("IsReplacement(%q) = %v, want %v", tt.announceType, got, tt.want)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := CollapseWhitespace("  a\n b\t\tc  ")
	if want := "a b c"; got != want {
		t.Errorf("CollapseWhitespace = %q, want %q", got, want)
	}
}
