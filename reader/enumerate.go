package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ListInputFiles returns the csv/xlsx files in a directory, sorted by name.
// An empty result is an error: a run cannot proceed without input files.
func ListInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch extension(entry.Name()) {
		case "csv", "xlsx":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no csv/xlsx files found in %s", dir)
	}

	sort.Strings(paths)
	return paths, nil
}
