package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"fileversion/internal/util/logger/sl"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// FileWatcher runs a Checker whenever a tracked file is created, written,
// renamed or removed. Events are debounced into a single check.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	checker   Checker
	errors    chan error
	config    Config
	logger    *slog.Logger
	debouncer *Debouncer
	metrics   *WatcherMetrics

	ctx    context.Context
	cancel context.CancelFunc

	tracked map[string]struct{}
	dirs    map[string]struct{}
	pending map[string]struct{}

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	pendMu   sync.Mutex
	checkMu  sync.Mutex
	closing  bool
	closed   bool
}

func NewFileWatcher(checker Checker, config Config) (*FileWatcher, error) {
	if config.DebounceDuration == 0 {
		config.DebounceDuration = DefaultDebounceDuration
	}
	if config.BufferSize == 0 {
		config.BufferSize = DefaultBufferSize
	}
	if config.IgnorePatterns == nil {
		config.IgnorePatterns = IgnoredPatterns
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	fw := &FileWatcher{
		watcher:   watcher,
		checker:   checker,
		errors:    make(chan error, config.BufferSize),
		config:    config,
		logger:    config.Logger.With(slog.String("component", "watcher")),
		debouncer: NewDebouncer(config.DebounceDuration),
		metrics:   NewWatcherMetrics(),
		ctx:       ctx,
		cancel:    cancel,
		tracked:   make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
		pending:   make(map[string]struct{}),
		stopChan:  make(chan struct{}),
	}

	fw.wg.Add(1)
	go fw.run()

	return fw, nil
}

// Watch registers tracked files. A file does not have to exist yet, but its
// directory does: the directory is what gets watched, so creation and
// removal of the file are seen too.
func (fw *FileWatcher) Watch(paths []string) error {
	if len(paths) == 0 {
		return ErrNoTrackedPaths
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closing {
		return ErrWatcherClosed
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}

		dir := filepath.Dir(abs)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, dir)
		}

		if _, ok := fw.dirs[dir]; !ok {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			fw.dirs[dir] = struct{}{}
			fw.metrics.RecordDirectoryAdded()
		}

		if _, ok := fw.tracked[abs]; !ok {
			fw.tracked[abs] = struct{}{}
			fw.metrics.RecordFileTracked()
		}
	}

	fw.logger.Debug("watching",
		slog.Int("files", len(fw.tracked)),
		slog.Int("dirs", len(fw.dirs)),
	)
	return nil
}

func (fw *FileWatcher) run() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopChan:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if fw.shouldProcessEvent(event) {
				fw.processEvent(event)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.handleError(err)
		}
	}
}

func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Проверяем, что это событие, которое нас интересует
	if event.Op&WatchedEvents == 0 {
		return false
	}

	// Проверяем игнорируемые паттерны
	for _, pattern := range fw.config.IgnorePatterns {
		if strings.Contains(event.Name, pattern) {
			fw.logger.Debug("ignoring file",
				slog.String("path", event.Name),
				slog.String("pattern", pattern),
			)
			return false
		}
	}

	fw.mu.RLock()
	defer fw.mu.RUnlock()
	_, ok := fw.tracked[filepath.Clean(event.Name)]
	return ok
}

func (fw *FileWatcher) processEvent(event fsnotify.Event) {
	fw.metrics.RecordEvent()

	fw.pendMu.Lock()
	fw.pending[filepath.Clean(event.Name)] = struct{}{}
	fw.pendMu.Unlock()

	fw.debouncer.Debounce(checkKey, fw.check)
}

func (fw *FileWatcher) check() {
	fw.checkMu.Lock()
	defer fw.checkMu.Unlock()

	if fw.closed || fw.ctx.Err() != nil {
		return
	}

	fw.pendMu.Lock()
	changed := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		changed = append(changed, p)
	}
	clear(fw.pending)
	fw.pendMu.Unlock()
	slices.Sort(changed)

	log := fw.logger.With(slog.String("run_id", uuid.NewString()))
	log.Info("tracked files changed", slog.Any("paths", changed))

	fw.metrics.RecordCheck()
	if err := fw.checker.Check(fw.ctx); err != nil {
		log.Error("check failed", sl.Err(err))
		fw.handleError(fmt.Errorf("check after change of %v: %w", changed, err))
	}
}

func (fw *FileWatcher) handleError(err error) {
	fw.metrics.RecordError()

	select {
	case fw.errors <- err:
	default:
		fw.logger.Warn("error buffer full, dropping error", sl.Err(err))
	}
}

// Close stops the event loop, cancels pending checks and waits for a running
// one. The Errors channel is closed afterwards.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.closing {
		fw.mu.Unlock()
		return ErrWatcherClosed
	}
	fw.closing = true
	fw.mu.Unlock()

	fw.cancel()
	close(fw.stopChan)
	fw.debouncer.Stop()
	fw.wg.Wait()

	fw.checkMu.Lock()
	fw.closed = true
	close(fw.errors)
	fw.checkMu.Unlock()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

func (fw *FileWatcher) Errors() <-chan error {
	return fw.errors
}

func (fw *FileWatcher) Metrics() *WatcherMetrics {
	return fw.metrics
}
