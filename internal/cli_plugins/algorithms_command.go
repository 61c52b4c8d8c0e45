package cliplugins

import (
	"context"
	"fmt"

	"fileversion/internal/cli"
	"fileversion/internal/hasher"

	"github.com/spf13/cobra"
)

type AlgorithmsCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewAlgorithmsCommand(app *cli.AppContext) *AlgorithmsCommand {
	return &AlgorithmsCommand{app: app}
}

func (a *AlgorithmsCommand) Meta() *cobra.Command {
	if a.cmd != nil {
		return a.cmd
	}
	a.cmd = &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported hash algorithms",
		Args:  cobra.NoArgs,
	}
	return a.cmd
}

func (a *AlgorithmsCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	for _, name := range hasher.Algorithms() {
		line := name
		if name == hasher.DefaultAlgorithm {
			line += " (default)"
		}
		if _, err := fmt.Fprintln(a.app.Out, line); err != nil {
			return err
		}
	}
	return nil
}
