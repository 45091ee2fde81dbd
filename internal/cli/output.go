// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplaySamples], [DisplaySweepSummary], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSample], [FormatProgress].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WritePlotFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/fibdev/internal/bench"
	"github.com/agbru/fibdev/internal/metrics"
	"github.com/agbru/fibdev/internal/ui"
)

// StdoutPlot is the OutputFile value that sends the plot to standard output
// instead of a file.
const StdoutPlot = "-"

// OutputConfig controls how sweep results are reported.
type OutputConfig struct {
	// OutputFile is the plot path. Empty skips the file; StdoutPlot prints
	// the plot lines only.
	OutputFile string
	// Quiet suppresses everything but the plot lines.
	Quiet bool
}

// WritePlotFile writes samples to path in the plot format, creating parent
// directories as needed.
func WritePlotFile(path string, samples []bench.Sample) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	if err := bench.WritePlot(file, samples); err != nil {
		file.Close()
		return fmt.Errorf("failed to write plot file: %w", err)
	}
	return file.Close()
}

// DisplaySweepResult prints the plot lines, writes the plot file and, unless
// quiet, prints the term table and summary.
func DisplaySweepResult(out io.Writer, samples []bench.Sample, mem metrics.MemoryDelta, config OutputConfig) error {
	DisplaySamples(out, samples)

	if config.OutputFile != "" && config.OutputFile != StdoutPlot {
		if err := WritePlotFile(config.OutputFile, samples); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%sTimings saved to: %s%s\n",
				ui.ColorSuccess(), config.OutputFile, ui.ColorReset())
		}
	}

	if config.Quiet {
		return nil
	}
	fmt.Fprintln(out)
	DisplaySampleTable(out, samples)
	DisplaySweepSummary(out, bench.Summarize(samples), mem)
	return nil
}
