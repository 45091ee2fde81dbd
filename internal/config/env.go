package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// envBinding ties FIBDEV_<key> to the flags it stands in for. The variable
// is consulted only when none of those flags appeared on the command line.
type envBinding struct {
	key   string
	flags []string
	set   func(*AppConfig, string)
}

func int64Env(field func(*AppConfig) *int64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*field(c) = n
		}
	}
}

func intEnv(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			*field(c) = n
		}
	}
}

func boolEnv(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringEnv(field func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = v }
}

// Unparseable values are ignored and leave the flag default in place.
var envBindings = []envBinding{
	{"FROM", []string{"from"}, int64Env(func(c *AppConfig) *int64 { return &c.From })},
	{"TO", []string{"to"}, int64Env(func(c *AppConfig) *int64 { return &c.To })},
	{"BUF", []string{"buf"}, intEnv(func(c *AppConfig) *int { return &c.BufLen })},
	{"STAGING_LIMIT", []string{"staging-limit"}, intEnv(func(c *AppConfig) *int { return &c.StagingLimit })},
	{"CONTEND", []string{"contend"}, intEnv(func(c *AppConfig) *int { return &c.Contend })},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}},
	{"OUTPUT", []string{"output", "o"}, stringEnv(func(c *AppConfig) *string { return &c.OutputFile })},
	{"ADDR", []string{"addr"}, stringEnv(func(c *AppConfig) *string { return &c.Addr })},
	{"LOG_LEVEL", []string{"log-level"}, stringEnv(func(c *AppConfig) *string { return &c.LogLevel })},
	{"SERVE", []string{"serve"}, boolEnv(func(c *AppConfig) *bool { return &c.Serve })},
	{"TUI", []string{"tui"}, boolEnv(func(c *AppConfig) *bool { return &c.TUI })},
	{"REPL", []string{"repl"}, boolEnv(func(c *AppConfig) *bool { return &c.REPL })},
	{"VERIFY", []string{"verify"}, boolEnv(func(c *AppConfig) *bool { return &c.Verify })},
	{"QUIET", []string{"quiet", "q"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case. Anything else
// yields fallback.
func parseBoolEnv(val string, fallback bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

// applyEnvOverrides fills in FIBDEV_* values for flags the command line left
// alone, giving flags precedence over the environment over defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for _, b := range envBindings {
		if anyExplicit(explicit, b.flags) {
			continue
		}
		if val := os.Getenv(EnvPrefix + b.key); val != "" {
			b.set(config, val)
		}
	}
}

func anyExplicit(explicit map[string]bool, names []string) bool {
	for _, n := range names {
		if explicit[n] {
			return true
		}
	}
	return false
}
