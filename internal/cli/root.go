package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"fileversion/internal/config"
	"fileversion/internal/hasher"
	"fileversion/internal/util/logger/handlers/slogpretty"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewRootCommand builds the root command. Its pre-run hook loads the config,
// applies flag overrides and installs the logger into app.
func NewRootCommand(app *AppContext) *cobra.Command {
	root := &cobra.Command{
		Use:           "fileversion",
		Short:         "Line-level fingerprints and change reports for a set of files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a yaml config file (CONFIG_PATH)")
	flags.StringP("algorithm", "a", hasher.DefaultAlgorithm, "hash algorithm")
	flags.StringP("revision-file", "r", "", "revision file of the json store")
	flags.String("store", config.StoreJSON, "record store: json or bolt")
	flags.String("bolt-path", "", "database file of the bolt store")
	flags.StringP("name", "n", "", "record name in the bolt store")
	flags.String("serializer", "", "record encoding in the bolt store: json or gob")
	flags.BoolP("write", "w", false, "write the version record even if none exists yet")
	flags.Bool("show-unchanged", true, "list unchanged files in the report")
	flags.StringSliceP("list", "l", nil, "file with one tracked path per line")
	flags.StringSliceP("dir", "d", nil, "track every non-hidden file under a directory")
	flags.String("env", "", "logging environment: local, dev or prod")
	flags.Bool("no-color", false, "disable colored output")

	root.RegisterFlagCompletionFunc("algorithm", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return hasher.Algorithms(), cobra.ShellCompDirectiveNoFileComp
	})
	root.RegisterFlagCompletionFunc("store", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.StoreJSON, config.StoreBolt}, cobra.ShellCompDirectiveNoFileComp
	})

	return root
}

// Init loads the config for cmd. Flags set on the command line win over
// the config file and the environment.
func (a *AppContext) Init(cmd *cobra.Command) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"algorithm", &cfg.HashAlgorithm},
		{"revision-file", &cfg.RevisionFile},
		{"store", &cfg.Store},
		{"bolt-path", &cfg.BoltPath},
		{"name", &cfg.RecordName},
		{"serializer", &cfg.Serializer},
		{"env", &cfg.Env},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst, _ = flags.GetString(o.flag)
		}
	}
	if flags.Changed("write") {
		cfg.Write, _ = flags.GetBool("write")
	}
	if flags.Changed("show-unchanged") {
		show, _ := flags.GetBool("show-unchanged")
		cfg.HideUnchanged = !show
	}
	if flags.Changed("list") {
		cfg.ListFiles, _ = flags.GetStringSlice("list")
	}
	if flags.Changed("dir") {
		cfg.Dirs, _ = flags.GetStringSlice("dir")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	noColor, _ := flags.GetBool("no-color")
	color.NoColor = noColor || !isTerminal(a.Out)

	a.Config = cfg
	a.Logger = SetupLogger(cfg.Env, a.ErrOut)
	a.Logger.Debug("configuration loaded",
		slog.String("store", cfg.Store),
		slog.String("algorithm", cfg.HashAlgorithm),
	)
	return nil
}

func SetupLogger(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog(w)
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(w, nil))
	}
	return log
}

func setupPrettySlog(w io.Writer) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelWarn,
		},
	}

	handler := opts.NewPrettyHandler(w)

	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
