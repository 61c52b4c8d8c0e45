package watcher

import (
	"context"
	"log/slog"
	"time"
)

// Checker re-runs a snapshot comparison of the tracked files.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Config содержит настройки для FileWatcher
type Config struct {
	DebounceDuration time.Duration
	BufferSize       int
	IgnorePatterns   []string
	Logger           *slog.Logger
}
