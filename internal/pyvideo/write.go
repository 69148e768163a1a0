package pyvideo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTree writes the conference metadata tree under dataDir:
//
//	<dataDir>/<conference-slug>/category.json
//	<dataDir>/<conference-slug>/videos/<talk-slug>.json
//
// Any existing tree for the conference is replaced so re-runs never mix
// stale documents with fresh ones.
func (c *Converter) WriteTree(dataDir string, talks []Talk) error {
	confDir := filepath.Join(dataDir, c.conf.Slug())
	if err := os.RemoveAll(confDir); err != nil {
		return fmt.Errorf("clear conference directory: %w", err)
	}

	videoDir := filepath.Join(confDir, "videos")
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		return fmt.Errorf("create conference directory: %w", err)
	}

	category := map[string]string{"title": c.conf.Title}
	if err := writeSortedJSON(filepath.Join(confDir, "category.json"), category); err != nil {
		return err
	}

	for _, talk := range talks {
		path := filepath.Join(videoDir, talk.Slug()+".json")
		if err := writeSortedJSON(path, talk); err != nil {
			return err
		}
	}
	return nil
}

// writeSortedJSON marshals v with alphabetically ordered keys and a
// trailing newline. The indexing site's tooling diffs these files, so the
// layout has to be byte-stable across runs.
func writeSortedJSON(path string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	// Round-trip through a generic value: encoding/json emits map keys in
	// sorted order, which struct field order does not guarantee.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
