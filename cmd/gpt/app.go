package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbrown/gptcli/internal/apperr"
	"github.com/pbrown/gptcli/internal/completion"
	"github.com/pbrown/gptcli/internal/config"
	"github.com/pbrown/gptcli/internal/debuglog"
	"github.com/pbrown/gptcli/internal/models"
	"github.com/pbrown/gptcli/internal/render"
	"github.com/pbrown/gptcli/internal/store"
	"github.com/pbrown/gptcli/internal/timing"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// App encapsulates CLI state and dependencies for testability
type App struct {
	stdout     io.Writer
	stderr     io.Writer
	configPath string // Path to config.json; empty means config.DefaultPath()

	cfg      *config.Config
	store    *store.Store
	log      *debuglog.Logger
	timer    *timing.Timer
	printer  *render.Printer
	settings *models.Settings // loaded in the pre-run hook, saved in the post-run hook
	command  string
}

// NewApp creates a new App with default stdout/stderr
func NewApp() *App {
	return &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// init loads configuration and wires the store, log and printer.
func (a *App) init() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.cfg = cfg
	a.store = store.InDir(cfg.DataDir)
	a.log = debuglog.New(cfg.StateDir, cfg.DebugLevel)
	a.timer = timing.New()
	a.printer = render.NewPrinter(a.stdout)
	return nil
}

// Run parses arguments, dispatches one command and returns the exit code.
func (a *App) Run(args []string) int {
	if err := a.init(); err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return exitError
	}
	defer a.log.Close()

	root := a.newRootCmd()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}

	err := root.ExecuteContext(context.Background())
	code := exitCode(err)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
	}

	a.log.LogRunFinished(a.command, code, a.timer.Millis(), err)
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case apperr.Is(err, apperr.KindUsage):
		return exitUsage
	default:
		return exitError
	}
}

// loadSettings runs before every command. A store failure aborts before
// any mutation happens.
func (a *App) loadSettings(cmd *cobra.Command, _ []string) error {
	a.command = cmd.Name()

	err := a.timer.Track(timing.PhaseLoad, func() error {
		s, err := a.store.Load()
		if err != nil {
			return err
		}
		a.settings = s
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	a.log.LogCommandStarted(a.command, a.settings)
	a.timer.Start(timing.PhaseCommand)
	return nil
}

// saveSettings runs after a command that returned without error. Commands
// that fail skip it, so their in-memory changes are dropped.
func (a *App) saveSettings(_ *cobra.Command, _ []string) error {
	a.timer.End(timing.PhaseCommand)

	err := a.timer.Track(timing.PhaseSave, func() error {
		return a.store.Save(a.settings)
	})
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	a.log.LogSettingsSaved(a.store.Path(), a.settings)
	return nil
}

func (a *App) newClient() *completion.Client {
	return completion.NewClient(completion.Options{
		BaseURL: a.cfg.BaseURL,
		Timeout: a.cfg.Timeout,
		Log:     a.log,
		Timer:   a.timer,
	})
}

// usageArgs tags argument-count errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return apperr.Usage(cmd.CommandPath()+": "+err.Error(), nil)
		}
		return nil
	}
}

func usageFlagError(_ *cobra.Command, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Usage(err.Error(), nil)
}
