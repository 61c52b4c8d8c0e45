package versioner

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"fileversion/internal/hasher"
)

type tableOrigin int

const (
	originEmpty tableOrigin = iota
	originBuilt
	originLoaded
)

// VersionTable is the fingerprint state of a whole tracked-file set. It is
// either built from disk or loaded from a Record; both compare the same way.
type VersionTable struct {
	fileList  []string
	algorithm string
	files     map[string]*FileVersion
	// paths the table held a fingerprint for when it was built, including
	// ones dropped on load because they no longer exist
	recorded map[string]struct{}
	version  string
	origin   tableOrigin
	stats    BuildStats
}

func NewVersionTable(fileList []string, algorithm string) *VersionTable {
	list := slices.Clone(fileList)
	slices.Sort(list)
	list = slices.Compact(list)
	if list == nil {
		list = []string{}
	}

	return &VersionTable{
		fileList:  list,
		algorithm: algorithm,
		files:     make(map[string]*FileVersion),
		recorded:  make(map[string]struct{}),
	}
}

// Build fingerprints every existing tracked path, skipping absent ones. The
// composite version is one hash over every line of every file, in path order.
func (t *VersionTable) Build(p hasher.Provider) error {
	if p.Name() != t.algorithm {
		return fmt.Errorf("%w: table uses %q, provider is %q", ErrAlgorithmMismatch, t.algorithm, p.Name())
	}

	start := time.Now()
	composite := p.New()
	files := make(map[string]*FileVersion, len(t.fileList))
	recorded := make(map[string]struct{}, len(t.fileList))

	var stats BuildStats
	observe := func(line []byte) {
		stats.Lines++
		stats.Bytes += int64(len(line))
		composite.Update(line)
	}

	for _, path := range t.fileList {
		if !exists(path) {
			stats.Missing++
			continue
		}
		fv := NewFileVersion(path)
		if err := fv.Build(p, observe); err != nil {
			return err
		}
		files[path] = fv
		recorded[path] = struct{}{}
		stats.Files++
	}
	stats.Duration = time.Since(start)

	t.stats = stats
	t.files = files
	t.recorded = recorded
	t.version = composite.Sum()
	t.origin = originBuilt
	return nil
}

// LoadFrom replaces the table with the contents of rec. Entries for paths
// that no longer exist are not loaded but stay known through Recorded.
func (t *VersionTable) LoadFrom(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrIO)
	}
	if rec.HashAlgorithm == "" {
		return fmt.Errorf("%w: record has no hash algorithm", ErrIO)
	}
	if !hasher.Supported(rec.HashAlgorithm) {
		return fmt.Errorf("%w: record algorithm %q: %w", ErrIO, rec.HashAlgorithm, hasher.ErrUnsupportedAlgorithm)
	}

	files := make(map[string]*FileVersion, len(rec.Files))
	recorded := make(map[string]struct{}, len(rec.Files))
	for path, fr := range rec.Files {
		if fr.FilePath != "" && fr.FilePath != path {
			return fmt.Errorf("%w: record entry %q names file %q", ErrIO, path, fr.FilePath)
		}
		recorded[path] = struct{}{}
		if !exists(path) {
			continue
		}
		lineHash := maps.Clone(fr.LineHash)
		if lineHash == nil {
			lineHash = make(map[string]int)
		}
		files[path] = &FileVersion{
			Path:     path,
			Version:  fr.Version,
			LineHash: lineHash,
		}
	}

	list := slices.Clone(rec.FileList)
	if list == nil {
		list = []string{}
	}

	t.fileList = list
	t.algorithm = rec.HashAlgorithm
	t.version = rec.Version
	t.files = files
	t.recorded = recorded
	t.stats = BuildStats{}
	t.origin = originLoaded
	return nil
}

// ToRecord is the inverse of LoadFrom.
func (t *VersionTable) ToRecord() *Record {
	files := make(map[string]FileRecord, len(t.files))
	for path, fv := range t.files {
		files[path] = fv.record()
	}

	return &Record{
		Version:       t.version,
		HashAlgorithm: t.algorithm,
		FileList:      slices.Clone(t.fileList),
		Files:         files,
	}
}

func (t *VersionTable) Get(path string) (*FileVersion, bool) {
	fv, ok := t.files[path]
	return fv, ok
}

func (t *VersionTable) Recorded(path string) bool {
	_, ok := t.recorded[path]
	return ok
}

func (t *VersionTable) Version() string { return t.version }

// Stats is zero unless the table was built.
func (t *VersionTable) Stats() BuildStats { return t.stats }

func (t *VersionTable) Algorithm() string { return t.algorithm }

func (t *VersionTable) FileList() []string { return slices.Clone(t.fileList) }

// Paths lists the paths that have a fingerprint, sorted.
func (t *VersionTable) Paths() []string { return sortedKeys(t.files) }

func (t *VersionTable) Built() bool { return t.origin == originBuilt }

func (t *VersionTable) Loaded() bool { return t.origin == originLoaded }
