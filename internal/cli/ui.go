package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibdev/internal/bench"
	"github.com/agbru/fibdev/internal/ui"
)

const (
	// ProgressRefreshRate is how often the sweep progress line is redrawn.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner and a progress bar while a sweep runs. It
// returns, calling wg.Done, once progressChan is closed, after printing the
// final state on its own line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.Progress, out io.Writer) {
	defer wg.Done()

	s := newSpinner(spinner.WithWriter(out))
	s.Start()

	var last bench.Progress
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case p, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintln(out, FormatProgress(last))
				return
			}
			last = p
		case <-ticker.C:
			s.UpdateSuffix(" " + FormatProgress(last))
		}
	}
}

// FormatProgress renders a progress update as "Sweep: 42/101 [bar] 41.58%".
func FormatProgress(p bench.Progress) string {
	return fmt.Sprintf("Sweep: %s%d/%d%s [%s] %6.2f%%",
		ui.ColorInfo(), p.Done, p.Total, ui.ColorReset(),
		progressBar(p.Fraction(), ProgressBarWidth), p.Fraction()*100)
}

// progressBar renders progress in [0, 1] as a bar of length runes.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := range length {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
