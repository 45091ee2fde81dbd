package bench

import (
	"bytes"
	"testing"
)

func TestWritePlot(t *testing.T) {
	t.Parallel()

	samples := []Sample{
		{Index: 0, KernelNs: 12, UserNs: 340},
		{Index: 1, KernelNs: 15, UserNs: 298},
	}
	var buf bytes.Buffer
	if err := WritePlot(&buf, samples); err != nil {
		t.Fatalf("WritePlot: %v", err)
	}
	want := "0 12 340\n1 15 298\n"
	if buf.String() != want {
		t.Errorf("plot = %q, want %q", buf.String(), want)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]Sample{
		{KernelNs: 10, UserNs: 100},
		{KernelNs: 30, UserNs: 200},
		{KernelNs: 20, UserNs: 150},
	})
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Kernel != (Stats{Min: 10, Max: 30, Mean: 20}) {
		t.Errorf("Kernel = %+v", s.Kernel)
	}
	if s.User != (Stats{Min: 100, Max: 200, Mean: 150}) {
		t.Errorf("User = %+v", s.User)
	}
	if s.Overhead != 130 {
		t.Errorf("Overhead = %v, want 130", s.Overhead)
	}

	if (Summarize(nil) != Summary{}) {
		t.Error("empty input should give a zero Summary")
	}
}
