package bench

import (
	"io"
	"sync"
)

// Progress is one sweep progress update.
type Progress struct {
	// Done is the number of indices processed so far.
	Done int
	// Total is the number of indices in the sweep.
	Total int
	// Index is the index just processed.
	Index int64
}

// Fraction returns Done/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// ProgressBufferSize is the capacity of the progress channel. Sweeps never
// block on a slow reporter; updates that do not fit are dropped.
const ProgressBufferSize = 16

// ProgressReporter displays sweep progress. DisplayProgress runs in its own
// goroutine, consumes updates until the channel is closed, then calls
// wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan Progress, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan Progress, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan Progress, out io.Writer) {
	f(wg, progressChan, out)
}

// NullProgressReporter drains updates without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan Progress, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}
