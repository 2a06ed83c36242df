// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// archiveRoot is the directory name used inside backup archives.
const archiveRoot = "arxiv-digest"

// Init creates the storage directory structure and the user record.
func Init(p Paths, now time.Time) error {
	if err := EnsureDirs(p); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	if _, err := UpdateUserRecord(p, now); err != nil {
		return err
	}
	return nil
}

// Status reports which stored documents exist. The user record is
// refreshed as a side effect when the root exists.
type Status struct {
	StorageExists bool `json:"storage_exists"`
	ProfileExists bool `json:"profile_exists"`
	PrefsExists   bool `json:"prefs_exists"`
	RecordExists  bool `json:"record_exists"`
	HistoryExists bool `json:"history_exists"`
}

// CheckStatus inspects the storage root.
func CheckStatus(p Paths, now time.Time) (Status, error) {
	if exists(p.Root) {
		if _, err := UpdateUserRecord(p, now); err != nil {
			return Status{}, err
		}
	}
	return Status{
		StorageExists: exists(p.Root),
		ProfileExists: exists(p.Profile),
		PrefsExists:   exists(p.Prefs),
		RecordExists:  exists(p.Record),
		HistoryExists: exists(p.History),
	}, nil
}

// Backup archives the whole storage root into a tar.gz at dest.
func Backup(p Paths, dest string) error {
	if !exists(p.Root) {
		return fmt.Errorf("no storage directory at %s: nothing to back up", p.Root)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating backup file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.Walk(p.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p.Root, path)
		if err != nil {
			return err
		}
		name := archiveRoot
		if rel != "." {
			name = filepath.Join(archiveRoot, rel)
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(name)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
}

// DefaultBackupName returns a timestamped archive filename.
func DefaultBackupName(now time.Time) string {
	return fmt.Sprintf("arxiv-digest-backup-%s.tar.gz", now.Format("20060102_150405"))
}

// Restore extracts a backup archive into the storage root's parent. Every
// member must live under the archive root; anything else rejects the
// whole archive.
func Restore(p Paths, src string, now time.Time) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening backup file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading backup file: %w", err)
	}
	defer gz.Close()

	destParent := filepath.Dir(p.Root)
	if err := os.MkdirAll(destParent, 0o755); err != nil {
		return fmt.Errorf("creating restore destination: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		rel, ok := safeMemberPath(hdr.Name)
		if !ok {
			return fmt.Errorf("invalid backup: member %q outside the %s root", hdr.Name, archiveRoot)
		}
		dest := p.Root
		if rel != "" {
			dest = filepath.Join(p.Root, rel)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
		}
	}

	_, err = UpdateUserRecord(p, now)
	return err
}

// safeMemberPath validates an archive member name and returns its path
// relative to the archive root. Path traversal or members outside the
// root are rejected.
func safeMemberPath(name string) (string, bool) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if clean == archiveRoot {
		return "", true
	}
	prefix := archiveRoot + "/"
	if !strings.HasPrefix(clean, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(clean, prefix)
	if rel == "" || strings.HasPrefix(rel, "../") || strings.Contains(rel, "/../") {
		return "", false
	}
	return filepath.FromSlash(rel), true
}

// Reset deletes the entire storage root. Deleting an absent root is not
// an error.
func Reset(p Paths) error {
	if !exists(p.Root) {
		return nil
	}
	return os.RemoveAll(p.Root)
}

// Preferences is the arxiv_preferences.json document.
type Preferences struct {
	Version          int      `json:"version"`
	CoreInterests    []string `json:"core_interests"`
	MethodsInterests []string `json:"methods_interests"`
	PositiveSignals  []string `json:"positive_signals"`
	NegativeSignals  []string `json:"negative_signals"`
	FavoriteAuthors  []string `json:"favorite_authors"`
	ArxivCategories  []string `json:"arxiv_categories"`
	LastUpdated      string   `json:"last_updated"`
	History          []any    `json:"history"`
}

// CreateDefaultPreferences writes a minimal preferences document. It
// refuses to overwrite an existing one.
func CreateDefaultPreferences(p Paths, categories, interests []string, now time.Time) error {
	if exists(p.Prefs) {
		return fmt.Errorf("preferences already exist at %s", p.Prefs)
	}
	if err := Init(p, now); err != nil {
		return err
	}

	if len(categories) == 0 {
		categories = []string{"astro-ph.CO"}
	}
	prefs := Preferences{
		Version:          2,
		CoreInterests:    orEmpty(interests),
		MethodsInterests: []string{},
		PositiveSignals:  []string{},
		NegativeSignals:  []string{},
		FavoriteAuthors:  []string{},
		ArxivCategories:  categories,
		LastUpdated:      now.Format("2006-01-02"),
		History:          []any{},
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.WriteFile(p.Prefs, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	_, err = UpdateUserRecord(p, now)
	return err
}

// LoadPreferences reads the preferences document.
func LoadPreferences(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}
	return &prefs, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
