// Package cli is the command-line entry point: the interactive UI by
// default, plus one-shot subcommands over the same flows.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todoclient/internal/config"
	"github.com/idilsaglam/todoclient/internal/exitcode"
	"github.com/idilsaglam/todoclient/internal/flow"
	"github.com/idilsaglam/todoclient/internal/logging"
	"github.com/idilsaglam/todoclient/internal/notify"
	"github.com/idilsaglam/todoclient/internal/remote"
	"github.com/idilsaglam/todoclient/internal/service"
	"github.com/idilsaglam/todoclient/internal/store"
	"github.com/idilsaglam/todoclient/internal/tui"
	"github.com/idilsaglam/todoclient/internal/ui"
)

// Build information, stamped with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// toastTTL is how long a notification stays on the status line.
const toastTTL = 4 * time.Second

// ServiceFactory builds the remote service for a loaded configuration.
type ServiceFactory func(cfg *config.Config, logger *log.Logger) (service.Service, error)

// RemoteService is the production ServiceFactory.
func RemoteService(cfg *config.Config, logger *log.Logger) (service.Service, error) {
	d, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return remote.New(cfg.BaseURL, remote.WithTimeout(d), remote.WithLogger(logger))
}

// App carries what every command shares.
type App struct {
	Out, Err   io.Writer
	NewService ServiceFactory

	flags config.Overrides
	cfg   *config.Config
}

// exitError carries an exit code. reported means the user already saw it.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitError{code: exitcode.Usage, err: fmt.Errorf(format, a...)}
}

// reported wraps an error the sink already printed.
func reported(err error) error {
	code := exitcode.FromError(err)
	if errors.Is(err, flow.ErrEmptyTitle) || errors.Is(err, flow.ErrBadStatus) {
		code = exitcode.UserError
	}
	return &exitError{code: code, err: err, reported: true}
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Terminal client for a remote todo service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive UI
  todo

  # Scriptable commands
  todo ls
  todo add Buy milk --due 2025-06-01
  todo done 3
`),
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(app.flags)
			if err != nil {
				return &exitError{code: exitcode.Usage, err: err}
			}
			app.cfg = cfg
			ui.SetTheme(cfg.Theme)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return runList(cmd, app)
			}
			return runTUI(cmd.Context(), app)
		},
	}
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitcode.Usage, err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.flags.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.toml)")
	pf.StringVar(&app.flags.BaseURL, "base-url", "", "todo service base URL")
	pf.StringVar(&app.flags.Timeout, "timeout", "", "per-request timeout, e.g. 10s")
	pf.StringVar(&app.flags.LogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&app.flags.LogFile, "log-file", "", "append logs to this file")
	pf.StringVar(&app.flags.Theme, "theme", "", "classic, neon or mono")

	cmd.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newStatusCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
		newVersionCmd(app),
	)
	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, &App{Out: stdout, Err: stderr, NewService: RemoteService}, args)
}

func execute(ctx context.Context, app *App, args []string) int {
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		ee = &exitError{code: exitcode.Usage, err: err}
	}
	if !ee.reported {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(app.Err, "✖ "+ee.err.Error())
		if ee.code == exitcode.Usage {
			fmt.Fprintln(app.Err, "Run 'todo --help' for usage.")
		}
	}
	return ee.code
}

// interactive reports whether stdout is a terminal the UI can own.
func (app *App) interactive() bool {
	f, ok := app.Out.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func runTUI(ctx context.Context, app *App) error {
	logger, closeLog, err := logging.Open(app.cfg.LogFile, app.cfg.LogLevel)
	if err != nil {
		return &exitError{code: exitcode.Usage, err: err}
	}
	defer closeLog()

	svc, err := app.NewService(app.cfg, logger)
	if err != nil {
		return &exitError{code: exitcode.Usage, err: err}
	}
	toast := notify.NewToast(toastTTL)
	ctl := flow.NewController(svc, store.New(), notify.Multi{toast, notify.Log{L: logger}}, logger)

	logger.Info("starting", "base_url", app.cfg.BaseURL, "version", Version)
	if err := tui.Run(ctx, ctl, toast); err != nil {
		return &exitError{code: exitcode.BackendError, err: fmt.Errorf("ui: %w", err)}
	}
	return nil
}
