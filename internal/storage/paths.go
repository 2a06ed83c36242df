// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage manages the persistent data root: small JSON documents
// (profile, preferences, read state, user record) plus a history
// directory, with init/status/backup/restore/reset operations.
package storage

import (
	"os"
	"path/filepath"
)

// Paths holds the resolved locations of every stored document.
type Paths struct {
	Root      string
	Profile   string
	Prefs     string
	Record    string
	History   string
	ReadState string
}

// ResolveRoot resolves the storage root from an explicit override, the
// environment snapshot, or the home fallback, in that order:
//
//  1. the override argument
//  2. ARXIV_DIGEST_HOME
//  3. $XDG_DATA_HOME/arxiv-digest
//  4. ~/.claude/arxiv-digest
//
// It is a pure function of its inputs; callers pass os.Getenv.
func ResolveRoot(override string, getenv func(string) string) string {
	if override != "" {
		return expand(override, getenv)
	}
	if root := getenv("ARXIV_DIGEST_HOME"); root != "" {
		return expand(root, getenv)
	}
	if xdg := getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(expand(xdg, getenv), "arxiv-digest")
	}
	return filepath.Join(home(getenv), ".claude", "arxiv-digest")
}

// ResolvePaths builds the full path set under the resolved root.
func ResolvePaths(override string, getenv func(string) string) Paths {
	root := ResolveRoot(override, getenv)
	return Paths{
		Root:      root,
		Profile:   filepath.Join(root, "researcher_profile.json"),
		Prefs:     filepath.Join(root, "arxiv_preferences.json"),
		Record:    filepath.Join(root, "user_record.json"),
		History:   filepath.Join(root, "history"),
		ReadState: filepath.Join(root, "read_state.json"),
	}
}

// EnsureDirs creates the root and history directories.
func EnsureDirs(p Paths) error {
	for _, dir := range []string{p.Root, p.History} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// expand resolves a leading "~/" against the environment's home.
func expand(path string, getenv func(string) string) string {
	if path == "~" {
		return home(getenv)
	}
	if len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator {
		return filepath.Join(home(getenv), path[2:])
	}
	return path
}

func home(getenv func(string) string) string {
	if h := getenv("HOME"); h != "" {
		return h
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}
