// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// WriteJSON writes records as indented JSON to w.
func WriteJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(papers)
}

// WriteYAML writes records as a YAML document to w.
func WriteYAML(papers []types.Paper, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(papers)
}

// WriteFile saves records to path in the given format ("json" or "yaml").
func WriteFile(papers []types.Paper, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	switch format {
	case "yaml", "yml":
		return WriteYAML(papers, f)
	case "json", "":
		return WriteJSON(papers, f)
	}
	return fmt.Errorf("unknown output format %q", format)
}
