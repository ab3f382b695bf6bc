package runstats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotJSON reports a file argument without a .json suffix.
var ErrNotJSON = errors.New("not a JSON file")

// ErrInvalidPath reports a path that is neither a file nor a directory.
var ErrInvalidPath = errors.New("not a valid file or directory")

// DiscoverRunResults resolves path, a file or a directory, into a sorted,
// de-duplicated list of candidate run_results files.
//
// A directory is searched three ways: run_results.json directly in the
// directory, run_results.json anywhere below it, and run_results*.json
// directly in it. Overlapping matches are de-duplicated. A directory with
// no matches yields an empty list, not an error.
func DiscoverRunResults(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s is %w", path, ErrInvalidPath)
	}

	if !info.IsDir() {
		if !strings.HasSuffix(path, ".json") {
			return nil, fmt.Errorf("%s is %w", path, ErrNotJSON)
		}
		return []string{path}, nil
	}

	seen := map[string]struct{}{}

	direct, err := filepath.Glob(filepath.Join(path, "run_results*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", path, err)
	}
	for _, match := range direct {
		seen[match] = struct{}{}
	}

	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if !d.IsDir() && d.Name() == "run_results.json" {
			seen[p] = struct{}{}
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to search %s: %w", path, walkErr)
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)

	return files, nil
}
