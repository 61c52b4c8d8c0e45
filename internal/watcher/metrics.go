package watcher

import (
	"sync/atomic"
	"time"
)

type WatcherMetrics struct {
	eventsProcessed atomic.Int64
	checksRun       atomic.Int64
	errors          atomic.Int64
	filesTracked    atomic.Int64
	dirsWatched     atomic.Int64
	lastEventTime   atomic.Int64
}

func NewWatcherMetrics() *WatcherMetrics {
	return &WatcherMetrics{}
}

func (m *WatcherMetrics) RecordEvent() {
	m.eventsProcessed.Add(1)
	m.lastEventTime.Store(time.Now().UnixNano())
}

func (m *WatcherMetrics) RecordCheck() {
	m.checksRun.Add(1)
}

func (m *WatcherMetrics) RecordError() {
	m.errors.Add(1)
}

func (m *WatcherMetrics) RecordFileTracked() {
	m.filesTracked.Add(1)
}

func (m *WatcherMetrics) RecordDirectoryAdded() {
	m.dirsWatched.Add(1)
}

func (m *WatcherMetrics) GetStats() map[string]interface{} {
	var last time.Time
	if ns := m.lastEventTime.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return map[string]interface{}{
		"events_processed": m.eventsProcessed.Load(),
		"checks_run":       m.checksRun.Load(),
		"errors":           m.errors.Load(),
		"files_tracked":    m.filesTracked.Load(),
		"dirs_watched":     m.dirsWatched.Load(),
		"last_event_time":  last,
	}
}
