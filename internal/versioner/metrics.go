package versioner

import (
	"log/slog"
	"time"
)

// BuildStats describes the last Build of a VersionTable.
type BuildStats struct {
	Files    int
	Missing  int
	Lines    int64
	Bytes    int64
	Duration time.Duration
}

func (s BuildStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("files", s.Files),
		slog.Int("missing", s.Missing),
		slog.Int64("lines", s.Lines),
		slog.Int64("bytes", s.Bytes),
		slog.Duration("duration", s.Duration),
	)
}
