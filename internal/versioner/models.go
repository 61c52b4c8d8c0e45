package versioner

import "sort"

// Record is the persisted form of a VersionTable. Field names match the
// revision files written by earlier releases, so those keep loading.
type Record struct {
	Version       string                `json:"version" yaml:"version"`
	HashAlgorithm string                `json:"hashAlgorithm" yaml:"hashAlgorithm"`
	FileList      []string              `json:"fileList" yaml:"fileList"`
	Files         map[string]FileRecord `json:"files" yaml:"files"`
}

type FileRecord struct {
	FilePath string         `json:"filePath" yaml:"filePath"`
	Version  string         `json:"version" yaml:"version"`
	LineHash map[string]int `json:"lineHash" yaml:"lineHash"`
}

type Status string

const (
	StatusNewMissing Status = "new & missing"
	StatusMissing    Status = "missing"
	StatusNew        Status = "new"
	StatusUnchanged  Status = "unchanged"
	StatusModified   Status = "modified"
)

// FileDiff is the classification of one tracked path. AddedLines are line
// numbers in the current file, RemovedLines line numbers in the last one.
type FileDiff struct {
	Path         string `json:"path"`
	Missing      bool   `json:"missing"`
	New          bool   `json:"new"`
	AddedLines   []int  `json:"addedLines"`
	RemovedLines []int  `json:"removedLines"`
}

func (d FileDiff) Status() Status {
	switch {
	case d.Missing && d.New:
		return StatusNewMissing
	case d.Missing:
		return StatusMissing
	case d.New:
		return StatusNew
	case len(d.AddedLines) == 0 && len(d.RemovedLines) == 0:
		return StatusUnchanged
	default:
		return StatusModified
	}
}

// Changed is true for every status except unchanged.
func (d FileDiff) Changed() bool {
	return d.Status() != StatusUnchanged
}

type State int

const (
	StateFresh State = iota
	StateRead
	StateBuilt
	StateCompared
	StateWritten
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateRead:
		return "read"
	case StateBuilt:
		return "built"
	case StateCompared:
		return "compared"
	case StateWritten:
		return "written"
	default:
		return "unknown"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
