// Package app wires the configuration, the device and the front ends
// together and dispatches to the selected mode.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibdev/internal/bench"
	"github.com/agbru/fibdev/internal/cli"
	"github.com/agbru/fibdev/internal/config"
	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
	"github.com/agbru/fibdev/internal/logging"
	"github.com/agbru/fibdev/internal/metrics"
	"github.com/agbru/fibdev/internal/server"
	"github.com/agbru/fibdev/internal/tui"
	"github.com/agbru/fibdev/internal/ui"
)

// Application represents the fibdev application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	in         io.Reader
	clock      fibdev.Clock
	logger     logging.Logger
	tuiOptions []tea.ProgramOption
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader the REPL reads commands from.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.in = in }
}

// WithClock sets the clock used by the device probe and the sweep.
func WithClock(c fibdev.Clock) AppOption {
	return func(a *Application) { a.clock = c }
}

// WithLogger replaces the leveled logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// WithTUIOptions appends bubbletea program options for the explorer.
func WithTUIOptions(opts ...tea.ProgramOption) AppOption {
	return func(a *Application) { a.tuiOptions = append(a.tuiOptions, opts...) }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, in: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fibdev"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	if app.logger == nil {
		app.logger = logging.NewLeveledLogger(errWriter, "fibdev", cfg.LogLevel)
	}
	return app, nil
}

// Run executes the application in the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	rec := metrics.New()
	dev := a.newDevice(rec)

	mode := a.Config.Mode()
	a.logger.Debug("starting", logging.String("mode", mode.String()))

	var err error
	switch mode {
	case config.ModeServe:
		err = a.runServe(ctx, dev, rec)
	case config.ModeTUI:
		err = a.runTUI(ctx, dev)
	case config.ModeREPL:
		err = a.runREPL(dev, out)
	case config.ModeContend:
		err = a.runContend(ctx, dev, out)
	default:
		err = a.runSweep(ctx, dev, out)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: mode.String(), Limit: a.Config.Timeout}
	}
	code := apperrors.ExitCodeFor(err)
	if code != apperrors.ExitSuccess {
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		a.logger.Error("run failed", err, logging.String("mode", mode.String()), logging.Int("exit_code", code))
	}
	return code
}

// newDevice builds the device owned by this run.
func (a *Application) newDevice(rec *metrics.Recorder) *fibdev.Device {
	opts := []fibdev.Option{
		fibdev.WithLogger(a.logger),
		fibdev.WithObserver(rec),
		fibdev.WithAllocator(fibdev.NewPoolAllocator(a.Config.StagingLimit)),
	}
	if a.clock != nil {
		opts = append(opts, fibdev.WithClock(a.clock))
	}
	return fibdev.New(opts...)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runSweep measures every index in the configured range and reports the
// timings.
func (a *Application) runSweep(ctx context.Context, dev *fibdev.Device, out io.Writer) error {
	var reporter bench.ProgressReporter = cli.CLIProgressReporter{}
	if a.Config.Quiet {
		reporter = bench.NullProgressReporter{}
	}

	mc := metrics.NewMemoryCollector()
	before := mc.Snapshot()
	samples, err := bench.Sweep(ctx, dev, bench.SweepOptions{
		From:     a.Config.From,
		To:       a.Config.To,
		BufLen:   a.Config.BufLen,
		Verify:   a.Config.Verify,
		Clock:    a.clock,
		Reporter: reporter,
		Out:      a.ErrWriter,
	})
	if err != nil {
		return err
	}
	mem := mc.Snapshot().Since(before)

	return cli.DisplaySweepResult(out, samples, mem, cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
	})
}

// runServe serves the device over HTTP until ctx is done.
func (a *Application) runServe(ctx context.Context, dev *fibdev.Device, rec *metrics.Recorder) error {
	srv := server.New(dev, server.Config{Addr: a.Config.Addr},
		server.WithLogger(a.logger),
		server.WithMetrics(server.NewMetricsFor(rec)))
	return srv.Run(ctx)
}

// runTUI launches the interactive explorer.
func (a *Application) runTUI(ctx context.Context, dev *fibdev.Device) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, a.tuiOptions...)
	return tui.Run(ctx, dev, a.Config.BufLen, Version, opts...)
}

// runREPL starts the command shell on the configured input.
func (a *Application) runREPL(dev *fibdev.Device, out io.Writer) error {
	repl := cli.NewREPL(dev, cli.REPLConfig{BufLen: a.Config.BufLen})
	repl.SetInput(a.in)
	repl.SetOutput(out)
	repl.Start()
	return nil
}

// runContend races concurrent opens and fails unless exactly one won.
func (a *Application) runContend(ctx context.Context, dev *fibdev.Device, out io.Writer) error {
	res, err := bench.Contend(ctx, dev, a.Config.Contend)
	if err != nil {
		return err
	}
	cli.DisplayContendResult(out, res)
	if res.Acquired != 1 {
		return fmt.Errorf("contend: %d of %d contenders acquired the session", res.Acquired, res.Contenders)
	}
	return nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
