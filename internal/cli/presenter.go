package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/agbru/fibdev/internal/bench"
	"github.com/agbru/fibdev/internal/format"
	"github.com/agbru/fibdev/internal/metrics"
	"github.com/agbru/fibdev/internal/ui"
)

// CLIProgressReporter displays sweep progress with a spinner.
type CLIProgressReporter struct{}

var _ bench.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements bench.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.Progress, out io.Writer) {
	DisplayProgress(wg, progressChan, out)
}

// FormatSample renders a sample as "index kernel_ns user_ns", the plot line
// format.
func FormatSample(s bench.Sample) string {
	return fmt.Sprintf("%d %d %d", s.Index, s.KernelNs, s.UserNs)
}

// DisplaySamples prints one plot line per sample.
func DisplaySamples(out io.Writer, samples []bench.Sample) {
	for _, s := range samples {
		fmt.Fprintln(out, FormatSample(s))
	}
}

// DisplaySampleTable prints the samples with their delivered terms.
func DisplaySampleTable(out io.Writer, samples []bench.Sample) {
	fmt.Fprintf(out, "%s%5s  %5s  %-20s  %12s  %12s%s\n", ui.ColorBold(),
		"index", "pos", "term", "kernel", "user", ui.ColorReset())
	for _, s := range samples {
		fmt.Fprintf(out, "%5d  %5d  %s%-20s%s  %12s  %12s\n",
			s.Index, s.Position,
			ui.ColorInfo(), s.Text, ui.ColorReset(),
			format.FormatNanos(s.KernelNs), format.FormatNanos(s.UserNs))
	}
}

// DisplaySweepSummary prints timing statistics and allocation activity for
// a sweep.
func DisplaySweepSummary(out io.Writer, sum bench.Summary, mem metrics.MemoryDelta) {
	fmt.Fprintf(out, "\n%s--- Sweep Summary ---%s\n", ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(out, "Writes:           %s%d%s\n", ui.ColorInfo(), sum.Count, ui.ColorReset())
	if sum.Count == 0 {
		return
	}
	printStats(out, "Kernel", sum.Kernel)
	printStats(out, "User", sum.User)
	fmt.Fprintf(out, "Mean overhead:    %s%s%s\n", ui.ColorInfo(), format.FormatNanos(int64(sum.Overhead)), ui.ColorReset())
	bytesPerOp, allocsPerOp := mem.PerOp(sum.Count)
	fmt.Fprintf(out, "Allocations:      %s%.1f B/op, %.2f allocs/op%s (%d GC cycles)\n",
		ui.ColorSecondary(), bytesPerOp, allocsPerOp, ui.ColorReset(), mem.GCCycles)
}

func printStats(out io.Writer, label string, s bench.Stats) {
	fmt.Fprintf(out, "%-6s min/mean/max: %s%s / %s / %s%s\n", label,
		ui.ColorInfo(), format.FormatNanos(s.Min), format.FormatNanos(int64(s.Mean)),
		format.FormatNanos(s.Max), ui.ColorReset())
}

// DisplayContendResult prints the outcome of a contention run.
func DisplayContendResult(out io.Writer, res bench.ContendResult) {
	status := ui.Paint(ui.ColorSuccess(), "exclusive")
	if res.Acquired > 1 {
		status = ui.Paint(ui.ColorError(), "NOT EXCLUSIVE")
	}
	fmt.Fprintf(out, "Contenders: %d  acquired: %d  busy: %d  (%s)\n",
		res.Contenders, res.Acquired, res.Busy, status)
}
