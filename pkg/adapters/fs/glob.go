package fs

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob expands a pattern such as "notebooks/**/*.ipynb" into matching files.
// A pattern without meta characters is returned as-is when the file exists.
func Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		if _, err := os.Stat(pattern); err != nil {
			return nil, fmt.Errorf("no files match %q: %w", pattern, err)
		}
		return []string{pattern}, nil
	}

	sort.Strings(matches)
	return matches, nil
}
