package bench

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// WritePlot writes one "index kernel_ns user_ns" line per sample.
func WritePlot(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", s.Index, s.KernelNs, s.UserNs); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Stats summarizes one timing column.
type Stats struct {
	Min  int64
	Max  int64
	Mean float64
}

// Summary summarizes a sweep.
type Summary struct {
	Count  int
	Kernel Stats
	User   Stats
	// Overhead is the mean of UserNs-KernelNs: the time a write spends
	// outside the timed computation.
	Overhead float64
}

// Summarize computes per-column statistics. An empty slice yields a zero
// Summary.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	kernel := newAccumulator()
	user := newAccumulator()
	var overhead float64
	for _, s := range samples {
		kernel.add(s.KernelNs)
		user.add(s.UserNs)
		overhead += float64(s.UserNs - s.KernelNs)
	}
	n := len(samples)
	return Summary{
		Count:    n,
		Kernel:   kernel.stats(n),
		User:     user.stats(n),
		Overhead: overhead / float64(n),
	}
}

type accumulator struct {
	min, max int64
	sum      float64
}

func newAccumulator() accumulator {
	return accumulator{min: math.MaxInt64, max: math.MinInt64}
}

func (a *accumulator) add(v int64) {
	a.min = min(a.min, v)
	a.max = max(a.max, v)
	a.sum += float64(v)
}

func (a *accumulator) stats(n int) Stats {
	return Stats{Min: a.min, Max: a.max, Mean: a.sum / float64(n)}
}
