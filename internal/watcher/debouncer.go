package watcher

import (
	"sync"
	"time"
)

type Debouncer struct {
	duration time.Duration
	timers   map[string]*time.Timer
	stopped  bool
	mu       sync.Mutex
}

func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		timers:   make(map[string]*time.Timer),
	}
}

func (d *Debouncer) Debounce(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if timer, exists := d.timers[key]; exists {
		timer.Stop()
	}

	d.timers[key] = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels pending calls and rejects new ones. A call already running is
// not interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}
