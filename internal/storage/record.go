// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FileInfo describes one stored document inside the user record: a
// pointer plus a lightweight summary so callers can inspect state without
// opening every file.
type FileInfo struct {
	Path       string         `json:"path"`
	Exists     bool           `json:"exists"`
	SizeBytes  int64          `json:"size_bytes,omitempty"`
	ModifiedAt string         `json:"modified_at,omitempty"`
	Summary    map[string]any `json:"summary,omitempty"`
}

// UserRecord is the user_record.json document.
type UserRecord struct {
	Version     int                 `json:"version"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	StorageRoot string              `json:"storage_root"`
	Files       map[string]FileInfo `json:"files"`
}

// UpdateUserRecord writes user_record.json with pointers to the profile,
// preferences, and read-state documents and their summaries, preserving
// the original creation timestamp.
func UpdateUserRecord(p Paths, now time.Time) (*UserRecord, error) {
	if err := EnsureDirs(p); err != nil {
		return nil, fmt.Errorf("creating storage directories: %w", err)
	}

	createdAt := now.Format(time.RFC3339)
	if existing := readJSONMap(p.Record); existing != nil {
		if v, ok := existing["created_at"].(string); ok && v != "" {
			createdAt = v
		}
	}

	record := &UserRecord{
		Version:     1,
		CreatedAt:   createdAt,
		UpdatedAt:   now.Format(time.RFC3339),
		StorageRoot: p.Root,
		Files: map[string]FileInfo{
			"researcher_profile": profileEntry(p.Profile),
			"arxiv_preferences":  prefsEntry(p.Prefs),
			"read_state":         readStateEntry(p.ReadState),
		},
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding user record: %w", err)
	}
	if err := os.WriteFile(p.Record, append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("writing user record: %w", err)
	}
	return record, nil
}

func profileEntry(path string) FileInfo {
	info := fileInfo(path)
	if !info.Exists {
		return info
	}
	if data := readJSONMap(path); data != nil {
		researcher, _ := data["researcher"].(map[string]any)
		publications, _ := data["publications"].(map[string]any)
		info.Summary = map[string]any{
			"name":               str(researcher, "name"),
			"publication_count":  num(publications, "total_count"),
			"primary_categories": list(publications, "primary_categories"),
			"built_at":           str(data, "built_at"),
		}
	}
	return info
}

func prefsEntry(path string) FileInfo {
	info := fileInfo(path)
	if !info.Exists {
		return info
	}
	if data := readJSONMap(path); data != nil {
		info.Summary = map[string]any{
			"core_interests_count":    lenOf(data, "core_interests"),
			"methods_interests_count": lenOf(data, "methods_interests"),
			"favorite_authors_count":  lenOf(data, "favorite_authors"),
			"arxiv_categories":        list(data, "arxiv_categories"),
			"last_updated":            str(data, "last_updated"),
		}
	}
	return info
}

func readStateEntry(path string) FileInfo {
	info := fileInfo(path)
	if !info.Exists {
		return info
	}
	if data := readJSONMap(path); data != nil {
		info.Summary = map[string]any{
			"last_read_date":   str(data, "last_read_date"),
			"read_dates_count": lenOf(data, "read_dates"),
			"updated_at":       str(data, "updated_at"),
		}
	}
	return info
}

func fileInfo(path string) FileInfo {
	info := FileInfo{Path: path}
	st, err := os.Stat(path)
	if err != nil {
		return info
	}
	info.Exists = true
	info.SizeBytes = st.Size()
	info.ModifiedAt = st.ModTime().Format(time.RFC3339)
	return info
}

// readJSONMap reads a JSON object, returning nil on any failure; record
// summaries are best-effort.
func readJSONMap(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	n, _ := m[key].(float64)
	return n
}

func list(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	l, _ := m[key].([]any)
	return l
}

func lenOf(m map[string]any, key string) int {
	return len(list(m, key))
}
