// Package cli wires configuration, storage and the library into the shelf
// command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Makepad-fr/shelf/internal/config"
	"github.com/Makepad-fr/shelf/internal/defaults"
	"github.com/Makepad-fr/shelf/internal/library"
	"github.com/Makepad-fr/shelf/internal/logging"
	"github.com/Makepad-fr/shelf/internal/model"
	"github.com/Makepad-fr/shelf/internal/store"
	"github.com/Makepad-fr/shelf/internal/tui"
	"github.com/Makepad-fr/shelf/internal/ui"
)

// app carries the state one invocation builds up before a command runs.
type app struct {
	v          *viper.Viper
	configFile string

	cfg config.Config
	log *zap.Logger
	kv  store.KV
	lib *library.Library
}

// Execute runs the command line and returns an exit code
// (0 ok, 1 error, 2 usage or rejected input).
func Execute(args []string, stdout, stderr io.Writer) int {
	a := &app{v: viper.New(), log: zap.NewNop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.close()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	if errors.Is(err, library.ErrIndexOutOfRange) {
		ui.Hint(stderr, "run `shelf ls` to see valid indexes")
	}
	return exitCode(err)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "shelf",
		Short: "shelf - keep track of the books you read",
		Long: `shelf keeps a list of books in a local store, seeded from a default list
that is merged in on every start. Books you added and the read flags you set
are kept across runs.

Run without arguments to open the interactive list.`,
		Args:          usageArgs(cobra.NoArgs, "usage: shelf <command> [args]"),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tui.Run(a.lib); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is $HOME/.shelf.yaml)")
	pf.String("store", "", "directory holding the book store (default ~/.shelf)")
	pf.String("backend", "", "store backend: json, sqlite or memory")
	pf.String("defaults", "", "YAML file replacing the built-in default books")
	pf.String("theme", "", "color theme: classic, neon or mono")
	pf.BoolP("verbose", "v", false, "debug logging on stderr")

	for key, flag := range map[string]string{
		config.KeyPath:         "store",
		config.KeyBackend:      "backend",
		config.KeyDefaultsFile: "defaults",
		config.KeyTheme:        "theme",
		config.KeyVerbose:      "verbose",
	} {
		// Lookup cannot miss; the flags are declared just above.
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.listCommand(),
		a.addCommand(),
		a.toggleCommand(),
		a.removeCommand(),
		a.showCommand(),
		a.statusCommand(),
		a.importCommand(),
		a.defaultsCommand(),
	)
	return root
}

// setup resolves configuration, then opens and loads the library.
func (a *app) setup() error {
	if err := config.Init(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	log, err := logging.New(cfg.LogLevel, cfg.Verbose)
	if err != nil {
		return err
	}
	a.log = log

	defs, err := defaults.Resolve(cfg.DefaultsFile)
	if err != nil {
		return err
	}

	kv, err := store.Open(cfg.Backend, cfg.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.kv = kv
	a.log.Debug("store opened", zap.String("backend", cfg.Backend), zap.String("path", cfg.Path))

	a.lib = library.New(store.New(kv, a.log), defs, a.log)
	return a.lib.Load()
}

func (a *app) close() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// usageError marks bad invocations; they exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// usageArgs replaces a cobra validator's message with a usage line.
func usageArgs(check cobra.PositionalArgs, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{fmt.Sprintf("%s (%v)", usage, err)}
		}
		return nil
	}
}

func exitCode(err error) int {
	var uerr usageError
	var verr *model.ValidationError
	switch {
	case errors.As(err, &uerr), errors.As(err, &verr), errors.Is(err, library.ErrIndexOutOfRange):
		return 2
	}
	return 1
}
