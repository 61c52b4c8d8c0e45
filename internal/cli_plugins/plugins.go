package cliplugins

import (
	"fileversion/internal/cli"
	pkgcli "fileversion/pkg/cli"
)

// All returns every command of the tool bound to app.
func All(app *cli.AppContext) []pkgcli.CommandPlugin {
	return []pkgcli.CommandPlugin{
		NewCheckCommand(app),
		NewVersionCommand(app),
		NewFilesCommand(app),
		NewWatchCommand(app),
		NewAlgorithmsCommand(app),
		NewHistoryCommand(app),
		NewResetCommand(app),
	}
}
