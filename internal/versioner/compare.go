package versioner

import (
	"fmt"
	"log/slog"
	"sort"
)

// Compare classifies every path tracked by either table. Files present on
// both sides are compared by their sets of line digests, so reordered lines
// produce no difference.
func (m *Manager) Compare() error {
	if !m.hasRead || !m.hasBuilt {
		return ErrPrecondition
	}
	if m.current.Algorithm() != m.last.Algorithm() {
		return fmt.Errorf("%w: read() uses %q, build() uses %q",
			ErrAlgorithmMismatch, m.last.Algorithm(), m.current.Algorithm())
	}

	curSet := toSet(m.current.fileList)
	lastSet := toSet(m.last.fileList)
	diffs := make(map[string]FileDiff, len(curSet)+len(lastSet))

	for path := range curSet {
		if _, ok := lastSet[path]; ok {
			diffs[path] = m.compareFile(path)
			continue
		}
		diffs[path] = FileDiff{Path: path, New: true, Missing: !exists(path)}
	}
	for path := range lastSet {
		if _, ok := curSet[path]; !ok {
			diffs[path] = FileDiff{Path: path, Missing: true}
		}
	}

	m.diffs = diffs
	m.state = StateCompared

	changed := 0
	for _, d := range diffs {
		if d.Changed() {
			changed++
		}
	}
	m.logger.Debug("compared version tables",
		slog.Int("files", len(diffs)),
		slog.Int("changed", changed),
	)
	return nil
}

// compareFile handles a path tracked by both tables.
func (m *Manager) compareFile(path string) FileDiff {
	cur, inCur := m.current.Get(path)
	last, inLast := m.last.Get(path)

	switch {
	case !inCur:
		// Gone now. If the last table never fingerprinted it either, it was
		// never seen on disk at all.
		return FileDiff{Path: path, Missing: true, New: !m.last.Recorded(path)}
	case !inLast:
		return FileDiff{Path: path, New: true}
	}

	return FileDiff{
		Path:         path,
		AddedLines:   lineDelta(cur.LineHash, last.LineHash),
		RemovedLines: lineDelta(last.LineHash, cur.LineHash),
	}
}

// lineDelta returns the line numbers, taken from a, of digests in a but not
// in b, ascending.
func lineDelta(a, b map[string]int) []int {
	lines := make([]int, 0)
	for digest, lineNo := range a {
		if _, ok := b[digest]; !ok {
			lines = append(lines, lineNo)
		}
	}
	sort.Ints(lines)
	return lines
}

// Diffs returns the classification of every path, sorted by path. It is nil
// until Compare has succeeded.
func (m *Manager) Diffs() []FileDiff {
	if m.diffs == nil {
		return nil
	}
	out := make([]FileDiff, 0, len(m.diffs))
	for _, path := range sortedKeys(m.diffs) {
		out = append(out, m.diffs[path])
	}
	return out
}

func (m *Manager) Diff(path string) (FileDiff, bool) {
	d, ok := m.diffs[path]
	return d, ok
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}
