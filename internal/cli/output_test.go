package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/fibdev/internal/bench"
	"github.com/agbru/fibdev/internal/metrics"
)

var testSamples = []bench.Sample{
	{Index: 0, Position: 0, Value: 0, Text: "0", KernelNs: 20, UserNs: 400},
	{Index: 10, Position: 10, Value: 55, Text: "55", KernelNs: 90, UserNs: 600},
}

func TestWritePlotFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "plot")
	if err := WritePlotFile(path, testSamples); err != nil {
		t.Fatalf("WritePlotFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "0 20 400\n10 90 600\n" {
		t.Errorf("plot = %q", data)
	}
}

func TestDisplaySweepResult(t *testing.T) {
	t.Parallel()

	t.Run("quiet stdout plot", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		err := DisplaySweepResult(&out, testSamples, metrics.MemoryDelta{}, OutputConfig{OutputFile: StdoutPlot, Quiet: true})
		if err != nil {
			t.Fatalf("DisplaySweepResult: %v", err)
		}
		if out.String() != "0 20 400\n10 90 600\n" {
			t.Errorf("quiet output = %q", out.String())
		}
	})

	t.Run("full report", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "plot")
		var out bytes.Buffer
		mem := metrics.MemoryDelta{AllocBytes: 64, Allocs: 2}
		if err := DisplaySweepResult(&out, testSamples, mem, OutputConfig{OutputFile: path}); err != nil {
			t.Fatalf("DisplaySweepResult: %v", err)
		}
		for _, want := range []string{"Timings saved to", "Sweep Summary", "Writes:", "55", "32.0 B/op"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("plot file not written: %v", err)
		}
	})
}

func TestDisplayContendResult(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	DisplayContendResult(&out, bench.ContendResult{Contenders: 8, Acquired: 1, Busy: 7})
	if !strings.Contains(out.String(), "acquired: 1") || !strings.Contains(out.String(), "exclusive") {
		t.Errorf("output = %q", out.String())
	}
}
