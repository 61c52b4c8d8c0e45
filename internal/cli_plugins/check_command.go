package cliplugins

import (
	"context"
	"fmt"
	"log/slog"

	"fileversion/internal/cli"
	"fileversion/internal/report"
	"fileversion/internal/versioner"

	"github.com/spf13/cobra"
)

type CheckCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewCheckCommand(app *cli.AppContext) *CheckCommand {
	return &CheckCommand{app: app}
}

func (c *CheckCommand) Meta() *cobra.Command {
	if c.cmd != nil {
		return c.cmd
	}
	c.cmd = &cobra.Command{
		Use:   "check [paths...]",
		Short: "Compare tracked files with the last version record",
		Long: `Fingerprints every tracked file, compares the result with the last
version record and prints a report. The record is updated when --write is set
or when one already exists.`,
	}
	c.cmd.Flags().Bool("fail-on-change", false, "exit with status 1 when the version changed")
	return c.cmd
}

func (c *CheckCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	failOnChange, err := cmd.Flags().GetBool("fail-on-change")
	if err != nil {
		return fmt.Errorf("flag --fail-on-change failed")
	}

	paths, err := c.app.TrackedPaths(args)
	if err != nil {
		return err
	}

	changed, err := RunCheck(c.app, paths)
	if err != nil {
		return err
	}
	if failOnChange && changed {
		return cli.ErrVersionChanged
	}
	return nil
}

// RunCheck runs one session over paths and prints the report. It reports
// whether the version differs from the last record.
func RunCheck(app *cli.AppContext, paths []string) (bool, error) {
	m, err := app.NewManager(paths)
	if err != nil {
		return false, err
	}

	var changed bool
	err = m.Session(func(m *versioner.Manager) error {
		changed = m.HasVersionChanged()
		app.Logger.Debug("check finished",
			slog.Int("files", len(paths)),
			slog.Bool("changed", changed),
		)
		return report.Write(app.Out, m.Diffs(), m.Version(), report.Options{
			ShowUnchanged: !app.Config.HideUnchanged,
		})
	})
	return changed, err
}
