package cliplugins

import (
	"context"
	"fmt"
	"log/slog"

	"fileversion/internal/cli"
	"fileversion/internal/util/logger/sl"
	"fileversion/internal/watcher"

	"github.com/spf13/cobra"
)

type WatchCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewWatchCommand(app *cli.AppContext) *WatchCommand {
	return &WatchCommand{app: app}
}

func (w *WatchCommand) Meta() *cobra.Command {
	if w.cmd != nil {
		return w.cmd
	}
	w.cmd = &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-run check whenever a tracked file changes",
	}
	w.cmd.Flags().Duration("debounce", 0, "quiet period before a check runs (default from config)")
	return w.cmd
}

func (w *WatchCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	paths, err := w.app.TrackedPaths(args)
	if err != nil {
		return err
	}

	debounce := w.app.Config.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		if debounce, err = cmd.Flags().GetDuration("debounce"); err != nil {
			return fmt.Errorf("flag --debounce failed")
		}
	}

	if _, err := RunCheck(w.app, paths); err != nil {
		return err
	}

	checker := watcher.CheckerFunc(func(ctx context.Context) error {
		_, err := RunCheck(w.app, paths)
		return err
	})

	fw, err := watcher.NewFileWatcher(checker, watcher.Config{
		DebounceDuration: debounce,
		IgnorePatterns:   w.app.Config.Watch.IgnorePatterns,
		Logger:           w.app.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Watch(paths); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	w.app.Logger.Info("watching tracked files", slog.Int("files", len(paths)))

	errs := fw.Errors()
	for {
		select {
		case <-ctx.Done():
			err := fw.Close()
			w.app.Logger.Info("watch stopped", slog.Any("stats", fw.Metrics().GetStats()))
			return err
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.app.Logger.Error("watch error", sl.Err(err))
		}
	}
}
