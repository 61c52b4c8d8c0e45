package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fileversion/internal/versioner"
)

// RevisionFile stores one version record as a JSON document on disk.
type RevisionFile struct {
	path   string
	indent bool
	mu     sync.RWMutex
}

type RevisionFileConfig struct {
	Path string
	// Indent pretty-prints the document. Off by default to keep large line
	// tables compact.
	Indent bool
}

func NewRevisionFile(cfg RevisionFileConfig) (*RevisionFile, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("revision file path is empty")
	}
	return &RevisionFile{path: cfg.Path, indent: cfg.Indent}, nil
}

func (s *RevisionFile) Path() string { return s.path }

func (s *RevisionFile) Load() (*versioner.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, versioner.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: read %s: %w", versioner.ErrIO, s.path, err)
	}

	var rec versioner.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", versioner.ErrIO, s.path, err)
	}
	return &rec, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never see a partial record.
func (s *RevisionFile) Save(rec *versioner.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", versioner.ErrIO)
	}

	var (
		data []byte
		err  error
	)
	if s.indent {
		data, err = json.MarshalIndent(rec, "", "  ")
	} else {
		data, err = json.Marshal(rec)
	}
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %w", versioner.ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".revision-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", versioner.ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", versioner.ErrIO, tmpPath, err)
	}
	if err := tmp.Chmod(versioner.DefaultPermissions); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", versioner.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", versioner.ErrIO, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", versioner.ErrIO, s.path, err)
	}
	return nil
}

func (s *RevisionFile) Exists() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Remove deletes the revision file; a missing file is not an error.
func (s *RevisionFile) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete revision file: %w", err)
	}
	return nil
}
