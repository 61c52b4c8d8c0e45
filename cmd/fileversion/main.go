package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fileversion/internal/cli"
	cliplugins "fileversion/internal/cli_plugins"
	"fileversion/internal/util/logger/sl"
	pkgcli "fileversion/pkg/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Создаем контекст с отменой для graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := cli.NewAppContext(os.Stdout, os.Stderr)
	defer func() {
		if err := app.Close(); err != nil {
			app.Logger.Error("failed to close stores", sl.Err(err))
		}
	}()

	c := pkgcli.NewCLI(cli.NewRootCommand(app))
	for _, p := range cliplugins.All(app) {
		c.RegisterPlugin(p)
	}

	err := c.Run(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrVersionChanged):
		return 1
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
}
