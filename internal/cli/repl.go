// Package cli provides the terminal front ends of fibdev: the interactive
// device shell, sweep progress and result reporting, and shell completion.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/fibdev/internal/fibdev"
	"github.com/agbru/fibdev/internal/fibonacci"
	"github.com/agbru/fibdev/internal/format"
	"github.com/agbru/fibdev/internal/ui"
)

// REPLConfig holds configuration for the shell session.
type REPLConfig struct {
	// BufLen is the write length used when "write" is given no argument.
	BufLen int
}

// REPL is an interactive shell over a single device. It holds at most one
// handle at a time.
type REPL struct {
	config REPLConfig
	dev    *fibdev.Device
	handle *fibdev.Handle
	probe  *fibdev.Probe
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a shell bound to dev.
func NewREPL(dev *fibdev.Device, config REPLConfig) *REPL {
	if config.BufLen <= 0 {
		config.BufLen = fibonacci.MaxDecimalDigits + 1
	}
	return &REPL{
		config: config,
		dev:    dev,
		probe:  fibdev.NewProbe(nil),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and runs commands until "exit" or end of input. A handle
// still open at that point is released.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	defer r.releaseOnExit()
	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, r.prompt())

		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) prompt() string {
	if r.handle == nil {
		return ui.ColorPrimary() + "fibdev> " + ui.ColorReset()
	}
	return fmt.Sprintf("%sfibdev[%d]> %s", ui.ColorPrimary(), r.handle.Position(), ui.ColorReset())
}

func (r *REPL) releaseOnExit() {
	if r.handle != nil {
		r.handle.Release()
		r.handle = nil
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s%sfibdev shell%s: F(0) to F(%d), one session at a time\n\n",
		ui.ColorBold(), ui.ColorPrimary(), ui.ColorReset(), fibdev.Bound)
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sCommands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range [][2]string{
		{"open", "Acquire the device session"},
		{"seek <off> [set|cur|end]", "Move the position (clamped to [0, 92])"},
		{"write [len]", "Compute the term at the position into a len-byte buffer"},
		{"read [pos]", "Call the read stub (always 0)"},
		{"release", "Release the session"},
		{"status", "Show the handle and device state"},
		{"compare [n]", "Run every engine algorithm for F(n) and check agreement"},
		{"<n>", "Seek to n and write (opens the session if needed)"},
		{"help", "Display this help"},
		{"exit / quit", "Leave the shell"},
	} {
		fmt.Fprintf(r.out, "  %s%-26s%s %s\n", ui.ColorWarning(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand runs one command line. It returns false when the shell
// should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "open", "o":
		r.cmdOpen()
	case "seek", "s":
		r.cmdSeek(args)
	case "write", "w":
		r.cmdWrite(args)
	case "read", "r":
		r.cmdRead(args)
	case "release", "close":
		r.cmdRelease()
	case "status", "st":
		r.cmdStatus()
	case "compare", "cmp":
		r.cmdCompare(args)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		n, err := strconv.ParseInt(cmd, 10, 64)
		if err != nil {
			r.errorf("Unknown command: %s", cmd)
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
			return true
		}
		r.quickWrite(n)
	}
	return true
}

func (r *REPL) errorf(format string, args ...any) {
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorError(), fmt.Sprintf(format, args...), ui.ColorReset())
}

// requireHandle reports whether a handle is open, printing a hint if not.
func (r *REPL) requireHandle() bool {
	if r.handle == nil {
		r.errorf("No open session. Type open first.")
		return false
	}
	return true
}

func (r *REPL) cmdOpen() {
	h, err := r.dev.Open()
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	r.handle = h
	fmt.Fprintf(r.out, "Session %s%s%s opened at position 0\n", ui.ColorInfo(), h.ID(), ui.ColorReset())
}

func (r *REPL) cmdSeek(args []string) {
	if !r.requireHandle() {
		return
	}
	if len(args) == 0 || len(args) > 2 {
		r.errorf("Usage: seek <offset> [set|cur|end]")
		return
	}
	off, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid offset: %s", args[0])
		return
	}
	whence := fibdev.SeekAbsolute
	if len(args) == 2 {
		w, ok := fibdev.ParseWhence(strings.ToLower(args[1]))
		if !ok {
			r.errorf("Invalid mode: %s (set, cur or end)", args[1])
			return
		}
		whence = w
	}
	pos, _ := r.handle.Seek(off, whence)
	fmt.Fprintf(r.out, "Position: %s%d%s  (%s %d)\n", ui.ColorInfo(), pos, ui.ColorReset(),
		fibdev.WhenceName(whence), off)
}

func (r *REPL) cmdWrite(args []string) {
	if !r.requireHandle() {
		return
	}
	n := r.config.BufLen
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			r.errorf("Invalid length: %s", args[0])
			return
		}
		n = v
	}
	r.write(n)
}

// write performs one device write of n bytes and prints the outcome. The
// local buffer is capped, so oversized lengths surface as device errors.
func (r *REPL) write(n int) {
	buf := fibdev.NewCallerBuffer(n)
	elapsed, err := r.handle.Write(buf, n)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	fmt.Fprintf(r.out, "F(%d) = %s%s%s  (%s)\n",
		r.handle.Position(),
		ui.ColorSuccess(), fibdev.TermText(buf), ui.ColorReset(),
		format.FormatNanos(elapsed))
}

func (r *REPL) cmdRead(args []string) {
	if !r.requireHandle() {
		return
	}
	var pos int64
	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			r.errorf("Invalid position: %s", args[0])
			return
		}
		pos = v
	}
	fmt.Fprintf(r.out, "read: %d\n", r.handle.Read(pos))
}

func (r *REPL) cmdRelease() {
	if !r.requireHandle() {
		return
	}
	r.handle.Release()
	r.handle = nil
	fmt.Fprintln(r.out, "Session released")
}

func (r *REPL) quickWrite(n int64) {
	if r.handle == nil {
		r.cmdOpen()
		if r.handle == nil {
			return
		}
	}
	r.handle.Seek(n, fibdev.SeekAbsolute)
	r.write(r.config.BufLen)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sStatus:%s\n", ui.ColorBold(), ui.ColorReset())
	busy := "free"
	if r.dev.Busy() {
		busy = "held"
	}
	fmt.Fprintf(r.out, "  Device:      %s%s%s\n", ui.ColorInfo(), busy, ui.ColorReset())
	if r.handle == nil {
		fmt.Fprintf(r.out, "  Handle:      %snone%s\n", ui.ColorSecondary(), ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  Handle:      %s%s%s\n", ui.ColorInfo(), r.handle.ID(), ui.ColorReset())
		fmt.Fprintf(r.out, "  Position:    %s%d%s\n", ui.ColorInfo(), r.handle.Position(), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  Write len:   %s%d%s\n\n", ui.ColorInfo(), r.config.BufLen, ui.ColorReset())
}

// cmdCompare times every registered engine algorithm for F(n). Without an
// argument it uses the handle's position, or 0 without a handle.
func (r *REPL) cmdCompare(args []string) {
	var n int64
	switch {
	case len(args) > 0:
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || v < 0 || v > fibonacci.MaxIndex {
			r.errorf("Invalid index: %s (0 to %d)", args[0], fibonacci.MaxIndex)
			return
		}
		n = v
	case r.handle != nil:
		n = r.handle.Position()
	}

	fmt.Fprintf(r.out, "\n%sComparison for F(%d):%s\n", ui.ColorBold(), n, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorPrimary(), ui.ColorReset())

	var first int64
	for i, algo := range fibonacci.All() {
		value, elapsed := r.probe.Measure(func() int64 { return algo.Fn(n) })
		if i == 0 {
			first = value
		}
		status := ui.Paint(ui.ColorSuccess(), "✓")
		if value != first {
			status = ui.Paint(ui.ColorError(), "✗ INCONSISTENT")
		}
		fmt.Fprintf(r.out, "  %s%-28s%s %20d %12s %s\n",
			ui.ColorWarning(), algo.Name, ui.ColorReset(), value, format.FormatNanos(elapsed), status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorPrimary(), ui.ColorReset())
}
