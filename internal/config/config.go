// Package config parses the fibdev command line and FIBDEV_ environment
// variables into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/fibdev/internal/bench"
	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "FIBDEV_"

// Defaults mirror the reference client: terms 0 through 100 with a
// 32-byte buffer, written to ./plot.
const (
	DefaultFrom       = 0
	DefaultTo         = 100
	DefaultBufLen     = 32
	DefaultOutputFile = "plot"
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
)

// Mode selects what the application does after parsing.
type Mode int

const (
	ModeSweep Mode = iota
	ModeServe
	ModeTUI
	ModeREPL
	ModeContend
)

func (m Mode) String() string {
	switch m {
	case ModeSweep:
		return "sweep"
	case ModeServe:
		return "serve"
	case ModeTUI:
		return "tui"
	case ModeREPL:
		return "repl"
	case ModeContend:
		return "contend"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// AppConfig holds the application configuration.
type AppConfig struct {
	// Mode flags; at most one may be set. None selects the sweep.
	Serve   bool
	TUI     bool
	REPL    bool
	Contend int // number of concurrent openers; 0 disables contend mode

	From       int64
	To         int64
	BufLen     int
	OutputFile string
	Verify     bool

	StagingLimit int
	Addr         string
	LogLevel     string
	Quiet        bool
	NoColor      bool
	Timeout      time.Duration

	ShowVersion bool
	Completion  string // shell to generate a completion script for
}

// Mode returns the selected mode.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Serve:
		return ModeServe
	case c.TUI:
		return ModeTUI
	case c.REPL:
		return ModeREPL
	case c.Contend > 0:
		return ModeContend
	}
	return ModeSweep
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	modes := 0
	for _, set := range []bool{c.Serve, c.TUI, c.REPL, c.Contend > 0} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-serve, -tui, -repl and -contend are mutually exclusive")
	}
	if c.Contend < 0 {
		return apperrors.ValidationError{Field: "contend", Message: "must not be negative"}
	}
	if c.From < 0 {
		return apperrors.ValidationError{Field: "from", Message: "must not be negative"}
	}
	if c.To < c.From {
		return apperrors.ValidationError{Field: "to", Message: fmt.Sprintf("%d is below -from %d", c.To, c.From)}
	}
	if c.To-c.From >= bench.MaxSpan {
		return apperrors.ValidationError{Field: "to",
			Message: fmt.Sprintf("-from %d to -to %d spans more than %d indices", c.From, c.To, bench.MaxSpan)}
	}
	if c.BufLen < 0 {
		return apperrors.ValidationError{Field: "buf", Message: "must not be negative"}
	}
	if c.BufLen > fibdev.MaxCallerBuffer {
		return apperrors.ValidationError{Field: "buf", Message: fmt.Sprintf("must not exceed %d", fibdev.MaxCallerBuffer)}
	}
	if c.StagingLimit < 0 {
		return apperrors.ValidationError{Field: "staging-limit", Message: "must not be negative"}
	}
	if c.Timeout < 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.ValidationError{Field: "log-level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applies FIBDEV_ environment
// overrides for flags not given on the command line, and validates the
// result. Flag errors, including flag.ErrHelp, are returned unchanged.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	config := AppConfig{}
	fs.BoolVar(&config.Serve, "serve", false, "Serve the device over HTTP.")
	fs.BoolVar(&config.TUI, "tui", false, "Explore the device interactively.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the command shell.")
	fs.IntVar(&config.Contend, "contend", 0, "Race this many concurrent opens and report the outcome.")
	fs.Int64Var(&config.From, "from", DefaultFrom, "First index of the sweep.")
	fs.Int64Var(&config.To, "to", DefaultTo, "Last index of the sweep (indices above 92 are clamped).")
	fs.IntVar(&config.BufLen, "buf", DefaultBufLen, "Length passed to each write.")
	fs.StringVar(&config.OutputFile, "o", DefaultOutputFile, "Plot file for sweep timings ('-' for stdout, '' to skip).")
	fs.StringVar(&config.OutputFile, "output", DefaultOutputFile, "Plot file for sweep timings (shorthand).")
	fs.BoolVar(&config.Verify, "verify", false, "Check every delivered term against the linear algorithm.")
	fs.IntVar(&config.StagingLimit, "staging-limit", fibdev.DefaultStagingLimit, "Largest staging buffer in bytes.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "HTTP listen address for -serve.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Only print results.")
	fs.BoolVar(&config.Quiet, "q", false, "Only print results (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Abort after this long (0 means no limit).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Print version information and exit (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errorOutput, "Configuration error:", err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorOutput, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
