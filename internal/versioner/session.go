package versioner

import (
	"errors"
	"log/slog"
)

// Session reads, builds and compares, then runs fn. On the way out, by
// every path including errors and panics, the current table is written when
// ManagerConfig.Write is set or the store already holds a record.
func (m *Manager) Session(fn func(*Manager) error) (err error) {
	defer func() {
		r := recover()
		if werr := m.release(); werr != nil {
			err = errors.Join(err, werr)
		}
		if r != nil {
			panic(r)
		}
	}()

	if err = m.Read(); err != nil {
		return err
	}
	if err = m.Build(); err != nil {
		return err
	}
	if err = m.Compare(); err != nil {
		return err
	}
	if fn != nil {
		return fn(m)
	}
	return nil
}

func (m *Manager) release() error {
	if m.store == nil {
		return nil
	}

	write := m.doWrite
	if !write {
		ok, err := m.store.Exists()
		if err != nil {
			return err
		}
		write = ok
	}
	if !write {
		m.logger.Debug("version record not written", slog.String("reason", "no previous record"))
		return nil
	}
	return m.Write()
}
