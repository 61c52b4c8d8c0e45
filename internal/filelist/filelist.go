// Package filelist turns command line arguments and list files into the set
// of tracked paths.
package filelist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Collect merges positional paths with the entries of each list file. List
// files hold one path per line; blank lines and lines starting with # are
// skipped. The result is cleaned, sorted and free of duplicates.
func Collect(args []string, listFiles []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			paths = append(paths, filepath.Clean(a))
		}
	}

	for _, lf := range listFiles {
		entries, err := readList(lf)
		if err != nil {
			return nil, err
		}
		paths = append(paths, entries...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, filepath.Clean(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file %s: %w", path, err)
	}
	return out, nil
}
