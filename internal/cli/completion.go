package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Long      string   // flag name without the dash (e.g., "serve")
	Short     string   // single-letter alias, if any
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh (e.g., "n", "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry lists every flag accepted by fibdev. All completion scripts
// are generated from it.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "serve", Help: "Serve the device over HTTP"},
	{Long: "tui", Help: "Explore the device interactively"},
	{Long: "repl", Help: "Start the command shell"},
	{Long: "contend", Help: "Race concurrent opens", Values: []string{"2", "8", "64"}, ValueName: "n"},
	{Long: "from", Help: "First sweep index", ValueName: "index"},
	{Long: "to", Help: "Last sweep index", ValueName: "index"},
	{Long: "buf", Help: "Write length in bytes", Values: []string{"1", "20", "32"}, ValueName: "bytes"},
	{Long: "output", Short: "o", Help: "Plot file", IsFile: true, ValueName: "file"},
	{Long: "verify", Help: "Check terms against the linear algorithm"},
	{Long: "staging-limit", Help: "Largest staging buffer in bytes", ValueName: "bytes"},
	{Long: "addr", Help: "HTTP listen address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "addr"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "quiet", Short: "q", Help: "Only print results"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "timeout", Help: "Abort after this long", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "completion", Help: "Generate completion script", Values: CompletionShells, ValueName: "shell"},
}

// CompletionShells lists the shells GenerateCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell ("bash", "zsh"
// or "fish") to out.
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(CompletionShells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion() string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		patterns := []string{"-" + f.Long}
		if f.Short != "" {
			patterns = append(patterns, "-"+f.Short)
		}
		opts = append(opts, patterns...)

		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(patterns, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for fibdev
# Add this to your ~/.bashrc or ~/.bash_completion

_fibdev_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibdev_completions fibdev
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion() string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef fibdev

# Zsh completion script for fibdev
# Place in a directory listed in $fpath

_fibdev() {
    _arguments -s \
%s
}

_fibdev "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats f as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for fibdev",
		"# Add this to ~/.config/fish/completions/fibdev.fish",
		"",
		"complete -c fibdev -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c fibdev", "-o " + f.Long}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
