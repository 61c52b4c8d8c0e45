package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultDebounceDuration = 500 * time.Millisecond
	DefaultBufferSize       = 100

	// one debounce slot for every tracked path
	checkKey = "check"
)

var (
	// События, за которыми мы следим
	WatchedEvents = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

	// Файловые паттерны, которые нужно игнорировать
	IgnoredPatterns = []string{
		":Zone.Identifier",
		".tmp",
		"~",
		".swp",
	}
)
