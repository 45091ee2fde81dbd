package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig("fibdev", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Mode() != ModeSweep {
		t.Errorf("Mode() = %s, want sweep", cfg.Mode())
	}
	if cfg.From != 0 || cfg.To != 100 {
		t.Errorf("range = [%d, %d], want [0, 100]", cfg.From, cfg.To)
	}
	if cfg.BufLen != DefaultBufLen {
		t.Errorf("BufLen = %d, want %d", cfg.BufLen, DefaultBufLen)
	}
	if cfg.OutputFile != "plot" {
		t.Errorf("OutputFile = %q, want plot", cfg.OutputFile)
	}
	if cfg.StagingLimit != fibdev.DefaultStagingLimit {
		t.Errorf("StagingLimit = %d, want %d", cfg.StagingLimit, fibdev.DefaultStagingLimit)
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{"serve", []string{"-serve", "-addr", "127.0.0.1:0"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeServe || c.Addr != "127.0.0.1:0" {
				t.Errorf("got mode %s addr %q", c.Mode(), c.Addr)
			}
		}},
		{"tui", []string{"-tui"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeTUI {
				t.Errorf("Mode() = %s, want tui", c.Mode())
			}
		}},
		{"repl", []string{"-repl"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeREPL {
				t.Errorf("Mode() = %s, want repl", c.Mode())
			}
		}},
		{"contend", []string{"-contend", "8"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeContend || c.Contend != 8 {
				t.Errorf("got mode %s contend %d", c.Mode(), c.Contend)
			}
		}},
		{"sweep bounds", []string{"-from", "5", "-to", "20", "-buf", "4", "-o", "-"}, func(t *testing.T, c AppConfig) {
			if c.From != 5 || c.To != 20 || c.BufLen != 4 || c.OutputFile != "-" {
				t.Errorf("got %+v", c)
			}
		}},
		{"widest range", []string{"-from", "5", "-to", "934", "-buf", "1048576"}, func(t *testing.T, c AppConfig) {
			if c.To-c.From+1 != 930 || c.BufLen != 1<<20 {
				t.Errorf("got %+v", c)
			}
		}},
		{"shorthands", []string{"-q", "-V"}, func(t *testing.T, c AppConfig) {
			if !c.Quiet || !c.ShowVersion {
				t.Errorf("Quiet = %v, ShowVersion = %v", c.Quiet, c.ShowVersion)
			}
		}},
		{"timeout", []string{"-timeout", "3s"}, func(t *testing.T, c AppConfig) {
			if c.Timeout != 3*time.Second {
				t.Errorf("Timeout = %v", c.Timeout)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseConfig("fibdev", tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseConfig(%v): %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{"two modes", []string{"-serve", "-tui"}, apperrors.ExitErrorConfig},
		{"inverted range", []string{"-from", "10", "-to", "5"}, apperrors.ExitErrorConfig},
		{"negative from", []string{"-from", "-1"}, apperrors.ExitErrorConfig},
		{"negative buf", []string{"-buf", "-1"}, apperrors.ExitErrorConfig},
		{"huge buf", []string{"-buf", "1125899906842624"}, apperrors.ExitErrorConfig},
		{"range to int64 max", []string{"-to", "9223372036854775807"}, apperrors.ExitErrorConfig},
		{"range one past ceiling", []string{"-from", "5", "-to", "935"}, apperrors.ExitErrorConfig},
		{"bad log level", []string{"-log-level", "loud"}, apperrors.ExitErrorConfig},
		{"positional", []string{"extra"}, apperrors.ExitErrorConfig},
		{"unknown flag", []string{"-bogus"}, apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("fibdev", tt.args, io.Discard)
			if err == nil {
				t.Fatalf("ParseConfig(%v) succeeded, want error", tt.args)
			}
			if got := apperrors.ExitCodeFor(err); got != tt.wantExit {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", err, got, tt.wantExit)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig("fibdev", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("got %v, want flag.ErrHelp", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIBDEV_TO", "40")
	t.Setenv("FIBDEV_BUF", "8")
	t.Setenv("FIBDEV_QUIET", "yes")
	t.Setenv("FIBDEV_TIMEOUT", "1m")
	t.Setenv("FIBDEV_STAGING_LIMIT", "not-a-number")

	cfg, err := ParseConfig("fibdev", []string{"-buf", "16"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.To != 40 {
		t.Errorf("To = %d, want 40 from env", cfg.To)
	}
	if cfg.BufLen != 16 {
		t.Errorf("BufLen = %d, want 16 (flag beats env)", cfg.BufLen)
	}
	if !cfg.Quiet {
		t.Error("Quiet should come from env")
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if cfg.StagingLimit != fibdev.DefaultStagingLimit {
		t.Errorf("StagingLimit = %d, invalid env value should be ignored", cfg.StagingLimit)
	}
}

func TestEnvOverrideModeConflict(t *testing.T) {
	t.Setenv("FIBDEV_SERVE", "true")

	_, err := ParseConfig("fibdev", []string{"-repl"}, io.Discard)
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("got %v, want a configuration error", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if ModeContend.String() != "contend" {
		t.Errorf("ModeContend = %q", ModeContend.String())
	}
	if Mode(9).String() != "Mode(9)" {
		t.Errorf("Mode(9) = %q", Mode(9).String())
	}
}
