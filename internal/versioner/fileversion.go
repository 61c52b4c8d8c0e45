package versioner

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"runtime/debug"

	"fileversion/internal/hasher"

	"golang.org/x/exp/mmap"
)

// FileVersion is the fingerprint of one file: a digest over its full byte
// stream and a digest -> line number table with one entry per distinct line.
// When two lines hash alike, the later line number wins.
type FileVersion struct {
	Path     string
	Version  string
	LineHash map[string]int
}

func NewFileVersion(path string) *FileVersion {
	return &FileVersion{
		Path:     path,
		LineHash: make(map[string]int),
	}
}

// Build reads the file once, start to end. Lines keep their terminator; a
// final line without one still counts. observe may be nil.
//
// A file truncated while mapped faults on access; the fault is returned as
// ErrIO instead of killing the process.
func (fv *FileVersion) Build(p hasher.Provider, observe LineObserver) (err error) {
	r, err := mmap.Open(fv.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, fv.Path, err)
	}
	defer r.Close()

	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if fault, ok := rec.(interface{ Addr() uintptr }); ok {
			err = fmt.Errorf("%w: read %s: fault at %#x", ErrIO, fv.Path, fault.Addr())
			return
		}
		panic(rec)
	}()

	fileHash := p.New()
	lineHash := make(map[string]int)
	reader := bufio.NewReader(io.NewSectionReader(r, 0, int64(r.Len())))

	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			fileHash.Update(line)
			lineHash[p.Hash(line)] = lineNo
			if observe != nil {
				observe(line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: read %s: %w", ErrIO, fv.Path, err)
		}
	}

	fv.Version = fileHash.Sum()
	fv.LineHash = lineHash
	return nil
}

// Lines returns the number of distinct line digests.
func (fv *FileVersion) Lines() int {
	return len(fv.LineHash)
}

func (fv *FileVersion) record() FileRecord {
	return FileRecord{
		FilePath: fv.Path,
		Version:  fv.Version,
		LineHash: maps.Clone(fv.LineHash),
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
