package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"fileversion/internal/config"
	"fileversion/internal/db"
	"fileversion/internal/filelist"
	"fileversion/internal/versioner"
	"fileversion/internal/versioner/storage"
)

// AppContext хранит зависимости, которые будут использоваться в командах CLI
type AppContext struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
	ErrOut io.Writer

	recordDB *db.RecordDB
}

func NewAppContext(out, errOut io.Writer) *AppContext {
	return &AppContext{
		Out:    out,
		ErrOut: errOut,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// TrackedPaths merges positional arguments with the files, list files and
// scanned directories named in the config.
func (a *AppContext) TrackedPaths(args []string) ([]string, error) {
	all := append(append([]string{}, a.Config.Files...), args...)
	for _, dir := range a.Config.Dirs {
		found, err := filelist.Scan(dir)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	paths, err := filelist.Collect(all, a.Config.ListFiles)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	return paths, nil
}

// RecordDB opens the bolt database once per process.
func (a *AppContext) RecordDB() (*db.RecordDB, error) {
	if a.recordDB != nil {
		return a.recordDB, nil
	}
	if dir := filepath.Dir(a.Config.BoltPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	serializer, err := db.NewSerializer(a.Config.Serializer)
	if err != nil {
		return nil, err
	}
	rdb, err := db.NewRecordDB(db.Config{Path: a.Config.BoltPath, Serializer: serializer})
	if err != nil {
		return nil, fmt.Errorf("open record database %s: %w", a.Config.BoltPath, err)
	}
	a.recordDB = rdb
	return rdb, nil
}

func (a *AppContext) RevisionFile() (*storage.RevisionFile, error) {
	return storage.NewRevisionFile(storage.RevisionFileConfig{
		Path:   a.Config.RevisionFile,
		Indent: a.Config.Indent,
	})
}

func (a *AppContext) Store() (versioner.RecordStore, error) {
	switch a.Config.Store {
	case config.StoreBolt:
		rdb, err := a.RecordDB()
		if err != nil {
			return nil, err
		}
		return rdb.Store(a.Config.RecordName), nil
	case config.StoreJSON:
		rf, err := a.RevisionFile()
		if err != nil {
			return nil, err
		}
		return rf, nil
	default:
		return nil, fmt.Errorf("unknown store %q", a.Config.Store)
	}
}

func (a *AppContext) NewManager(paths []string) (*versioner.Manager, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return versioner.NewManager(versioner.ManagerConfig{
		Store:     store,
		FileList:  paths,
		Algorithm: a.Config.HashAlgorithm,
		Write:     a.Config.Write,
		Logger:    a.Logger,
	})
}

func (a *AppContext) Close() error {
	if a.recordDB == nil {
		return nil
	}
	err := a.recordDB.Close()
	a.recordDB = nil
	if err != nil && !errors.Is(err, db.ErrNilDB) {
		return err
	}
	return nil
}
