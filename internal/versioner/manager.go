package versioner

import (
	"errors"
	"fmt"
	"log/slog"

	"fileversion/internal/hasher"
)

type ManagerConfig struct {
	Store     RecordStore
	FileList  []string
	Algorithm string
	// Write persists the current table when a Session ends even if the
	// store holds no record yet.
	Write  bool
	Logger *slog.Logger
}

// Manager owns the last persisted VersionTable and the one built for this
// run, and compares them.
type Manager struct {
	store    RecordStore
	provider hasher.Provider
	current  *VersionTable
	last     *VersionTable
	diffs    map[string]FileDiff
	doWrite  bool
	hasRead  bool
	hasBuilt bool
	state    State
	logger   *slog.Logger
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = hasher.DefaultAlgorithm
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	provider, err := hasher.New(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Manager{
		store:    cfg.Store,
		provider: provider,
		current:  NewVersionTable(cfg.FileList, cfg.Algorithm),
		last:     NewVersionTable(nil, cfg.Algorithm),
		doWrite:  cfg.Write,
		state:    StateFresh,
		logger:   cfg.Logger.With(slog.String("component", "versioner"), slog.String("algorithm", cfg.Algorithm)),
	}, nil
}

// Read loads the last record. A store without a record is not an error: the
// last table stays empty and every current file classifies as new.
func (m *Manager) Read() error {
	last := NewVersionTable(nil, m.provider.Name())

	if m.store != nil {
		rec, err := m.store.Load()
		switch {
		case errors.Is(err, ErrRecordNotFound):
			m.logger.Debug("no previous version record")
		case err != nil:
			return fmt.Errorf("failed to load version record: %w", err)
		default:
			if err := last.LoadFrom(rec); err != nil {
				return err
			}
			m.logger.Debug("loaded version record",
				slog.String("version", last.Version()),
				slog.Int("files", len(last.files)),
			)
		}
	}

	m.last = last
	m.hasRead = true
	m.state = StateRead
	return nil
}

// Build fingerprints the tracked files into the current table.
func (m *Manager) Build() error {
	if err := m.current.Build(m.provider); err != nil {
		return fmt.Errorf("failed to build version table: %w", err)
	}

	m.hasBuilt = true
	m.state = StateBuilt
	m.logger.Debug("built version table",
		slog.String("version", m.current.Version()),
		slog.Int("tracked", len(m.current.fileList)),
		slog.Any("stats", m.current.Stats()),
	)
	return nil
}

// Write persists the current table, building it first if needed.
func (m *Manager) Write() error {
	if m.store == nil {
		return ErrNoStore
	}
	if !m.current.Built() {
		if err := m.Build(); err != nil {
			return err
		}
	}

	if err := m.store.Save(m.current.ToRecord()); err != nil {
		return fmt.Errorf("failed to save version record: %w", err)
	}

	m.state = StateWritten
	m.logger.Info("version record written", slog.String("version", m.current.Version()))
	return nil
}

// HasVersionChanged compares composite versions only.
func (m *Manager) HasVersionChanged() bool {
	return m.current.Version() != m.last.Version()
}

func (m *Manager) Version() string { return m.current.Version() }

func (m *Manager) State() State { return m.state }

func (m *Manager) Current() *VersionTable { return m.current }

func (m *Manager) Last() *VersionTable { return m.last }

func (m *Manager) Algorithm() string { return m.provider.Name() }
