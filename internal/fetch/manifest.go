package fetch

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadManifest reads a JSON file listing the remote files to download.
func LoadManifest(path string) ([]FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var files []FileInfo
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	for i, file := range files {
		if file.ID == "" || file.Name == "" {
			return nil, fmt.Errorf("manifest entry %d is missing id or name", i)
		}
	}
	return files, nil
}
