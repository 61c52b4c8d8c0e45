package versioner

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.DiscardHandler)

// memStore keeps the record JSON-encoded so loads never share maps with the
// table that saved it.
type memStore struct {
	data  []byte
	saves int
}

func (s *memStore) Load() (*Record, error) {
	if s.data == nil {
		return nil, ErrRecordNotFound
	}
	var rec Record
	if err := json.Unmarshal(s.data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *memStore) Save(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

func (s *memStore) Exists() (bool, error) {
	return s.data != nil, nil
}

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Load() (*Record, error) {
	args := m.Called()
	if rec, ok := args.Get(0).(*Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordStore) Save(rec *Record) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockRecordStore) Exists() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultPermissions))
}

func tempFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

// snapshot runs a full session that always writes.
func snapshot(t *testing.T, store RecordStore, files []string, algorithm string) *Manager {
	t.Helper()
	m, err := NewManager(ManagerConfig{
		Store:     store,
		FileList:  files,
		Algorithm: algorithm,
		Write:     true,
		Logger:    testLogger,
	})
	require.NoError(t, err)
	require.NoError(t, m.Session(nil))
	return m
}

var mockAnyRecord = mock.AnythingOfType("*versioner.Record")

type mockArgs = mock.Arguments
