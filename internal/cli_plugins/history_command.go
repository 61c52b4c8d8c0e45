package cliplugins

import (
	"context"
	"fmt"
	"time"

	"fileversion/internal/cli"
	"fileversion/internal/config"

	"github.com/spf13/cobra"
)

type HistoryCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewHistoryCommand(app *cli.AppContext) *HistoryCommand {
	return &HistoryCommand{app: app}
}

func (h *HistoryCommand) Meta() *cobra.Command {
	if h.cmd != nil {
		return h.cmd
	}
	h.cmd = &cobra.Command{
		Use:   "history",
		Short: "Show saved versions of a record in the bolt store",
		Args:  cobra.NoArgs,
	}
	h.cmd.Flags().Bool("names", false, "list record names instead")
	return h.cmd
}

func (h *HistoryCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	if h.app.Config.Store != config.StoreBolt {
		return cli.ErrNotBoltStore
	}
	listNames, err := cmd.Flags().GetBool("names")
	if err != nil {
		return fmt.Errorf("flag --names failed")
	}

	rdb, err := h.app.RecordDB()
	if err != nil {
		return err
	}

	if listNames {
		names, err := rdb.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(h.app.Out, name)
		}
		return nil
	}

	entries, err := rdb.History(h.app.Config.RecordName)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(h.app.Out, "%s  %s  %-10s %3d files  %s\n",
			e.SavedAt.Format(time.RFC3339), e.Version, e.HashAlgorithm, e.Files, e.RunID)
	}
	return nil
}
