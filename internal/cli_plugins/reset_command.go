package cliplugins

import (
	"context"
	"fmt"
	"log/slog"

	"fileversion/internal/cli"
	"fileversion/internal/config"

	"github.com/spf13/cobra"
)

type ResetCommand struct {
	cmd *cobra.Command
	app *cli.AppContext
}

func NewResetCommand(app *cli.AppContext) *ResetCommand {
	return &ResetCommand{app: app}
}

func (r *ResetCommand) Meta() *cobra.Command {
	if r.cmd != nil {
		return r.cmd
	}
	r.cmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored version record",
		Long:  "Delete the stored version record. The next check starts from an empty record.",
		Args:  cobra.NoArgs,
	}
	return r.cmd
}

func (r *ResetCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	switch r.app.Config.Store {
	case config.StoreBolt:
		rdb, err := r.app.RecordDB()
		if err != nil {
			return err
		}
		if err := rdb.DeleteRecord(r.app.Config.RecordName); err != nil {
			return fmt.Errorf("delete record %s: %w", r.app.Config.RecordName, err)
		}
	default:
		rf, err := r.app.RevisionFile()
		if err != nil {
			return err
		}
		if err := rf.Remove(); err != nil {
			return err
		}
	}

	r.app.Logger.Info("version record removed", slog.String("store", r.app.Config.Store))
	return nil
}
