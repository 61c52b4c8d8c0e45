package cliplugins

import (
	"context"
	"fmt"
	"strings"

	"fileversion/internal/cli"
	"fileversion/internal/versioner"

	"github.com/spf13/cobra"
)

type FilesCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewFilesCommand(app *cli.AppContext) *FilesCommand {
	return &FilesCommand{app: app}
}

func (f *FilesCommand) Meta() *cobra.Command {
	if f.cmd != nil {
		return f.cmd
	}
	f.cmd = &cobra.Command{
		Use:   "files [paths...]",
		Short: "Print the per-file versions of the tracked files",
	}
	f.cmd.Flags().StringP("format", "f", versioner.FormatText, "output format: text, json or yaml")
	f.cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{versioner.FormatText, versioner.FormatJSON, versioner.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	return f.cmd
}

func (f *FilesCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("flag --format failed")
	}

	paths, err := f.app.TrackedPaths(args)
	if err != nil {
		return err
	}

	m, err := f.app.NewManager(paths)
	if err != nil {
		return err
	}
	if err := m.Build(); err != nil {
		return err
	}

	out, err := m.FileVersions(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.app.Out, strings.TrimRight(out, "\n"))
	return err
}
