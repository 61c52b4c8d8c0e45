package cliplugins

import (
	"context"
	"fmt"

	"fileversion/internal/cli"

	"github.com/spf13/cobra"
)

type VersionCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewVersionCommand(app *cli.AppContext) *VersionCommand {
	return &VersionCommand{app: app}
}

func (v *VersionCommand) Meta() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}
	v.cmd = &cobra.Command{
		Use:   "version [paths...]",
		Short: "Print the composite version of the tracked files",
	}
	return v.cmd
}

func (v *VersionCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	paths, err := v.app.TrackedPaths(args)
	if err != nil {
		return err
	}

	m, err := v.app.NewManager(paths)
	if err != nil {
		return err
	}
	if err := m.Build(); err != nil {
		return err
	}
	if v.app.Config.Write {
		if err := m.Write(); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(v.app.Out, m.Version())
	return err
}
