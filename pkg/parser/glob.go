package parser

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandSources expands glob patterns from a config file's log_sources list
// into a sorted, deduplicated list of paths. A pattern that matches nothing
// is kept as a literal path so the caller can report a useful open error.
func ExpandSources(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	// Sort for deterministic ordering
	sort.Strings(paths)

	return paths, nil
}
