package slogpretty

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("op", "check"))

	log.Info("version computed", slog.String("version", "abc"))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "version computed")
	assert.Contains(t, out, `"version": "abc"`)
	assert.Contains(t, out, `"op": "check"`)
}

func TestPrettyHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelWarn}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).
		With(slog.String("op", "watch")).
		WithGroup("run").
		With(slog.String("id", "r1")).
		WithGroup("")

	log.Info("check", slog.Int("files", 2))

	out := buf.String()
	assert.Contains(t, out, `"op": "watch"`)
	assert.Contains(t, out, `"run.id": "r1"`)
	assert.Contains(t, out, `"run.files": 2`)
}
