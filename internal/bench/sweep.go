package bench

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
	"github.com/agbru/fibdev/internal/fibonacci"
	"github.com/agbru/fibdev/internal/tracing"
)

// MaxSpan is the largest number of indices one sweep visits. Every index
// above fibdev.Bound lands on F(Bound), so longer sweeps only repeat it.
const MaxSpan = 10 * (fibdev.Bound + 1)

// SweepOptions configures a sweep.
type SweepOptions struct {
	// From and To bound the requested indices, both inclusive. Indices above
	// fibdev.Bound are sent as-is and clamped by the device.
	From, To int64
	// BufLen is the length passed to every write.
	BufLen int
	// Verify compares every delivered term with fibonacci.Linear and fails
	// the sweep with a MismatchError on the first disagreement.
	Verify bool
	// Clock times writes from the caller's side. Nil selects
	// fibdev.MonotonicClock.
	Clock fibdev.Clock
	// Reporter displays progress on Out. Nil disables progress output.
	Reporter ProgressReporter
	Out      io.Writer
}

// Sample is the measurement for one index.
type Sample struct {
	// Index is the requested index.
	Index int64
	// Position is where the device cursor landed after the seek.
	Position int64
	// Value is the term decoded from the buffer, or 0 when the buffer was too
	// short to hold any digit.
	Value int64
	// Text is the raw decimal text read back, up to the first NUL.
	Text string
	// KernelNs is the computation time reported by the device.
	KernelNs int64
	// UserNs is the wall time of the whole write seen by the caller.
	UserNs int64
}

// Sweep opens dev, seeks to every index in [From, To], writes, and returns
// one Sample per index. The session is released before returning. Busy and
// transfer errors end the sweep; cancellation of ctx ends it between two
// indices. Samples collected before an error are returned with it.
func Sweep(ctx context.Context, dev *fibdev.Device, opts SweepOptions) (samples []Sample, err error) {
	if opts.To < opts.From {
		return nil, apperrors.ValidationError{Field: "to", Message: fmt.Sprintf("%d is below from %d", opts.To, opts.From)}
	}
	if uint64(opts.To)-uint64(opts.From) >= MaxSpan {
		return nil, apperrors.ValidationError{Field: "to",
			Message: fmt.Sprintf("range %d..%d exceeds %d indices", opts.From, opts.To, MaxSpan)}
	}
	clock := opts.Clock
	if clock == nil {
		clock = fibdev.MonotonicClock()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	ctx, span := tracing.StartSpan(ctx, "bench.Sweep",
		attribute.Int64("from", opts.From),
		attribute.Int64("to", opts.To),
		attribute.Int("buf_len", opts.BufLen))
	defer func() { tracing.End(span, err) }()

	h, err := dev.Open()
	if err != nil {
		return nil, err
	}
	defer h.Release()

	total := int(opts.To-opts.From) + 1
	progressChan := make(chan Progress, ProgressBufferSize)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, out)
	defer func() {
		close(progressChan)
		displayWg.Wait()
	}()

	samples = make([]Sample, 0, total)
	buf := fibdev.NewCallerBuffer(opts.BufLen)
	for k := range total {
		i := opts.From + int64(k)
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		pos, _ := h.Seek(i, fibdev.SeekAbsolute)
		clear(buf)

		start := clock.Nanotime()
		kernelNs, err := h.Write(buf, opts.BufLen)
		userNs := clock.Nanotime() - start
		if err != nil {
			return samples, apperrors.WrapError(err, "index %d", i)
		}

		s := Sample{
			Index:    i,
			Position: pos,
			Text:     string(fibdev.TermText(buf)),
			KernelNs: kernelNs,
			UserNs:   max(userNs, 0),
		}
		s.Value, _ = fibdev.DecodeTerm(buf)
		if opts.Verify {
			if err := verify(s, opts.BufLen); err != nil {
				return samples, err
			}
		}
		samples = append(samples, s)

		select {
		case progressChan <- Progress{Done: len(samples), Total: total, Index: i}:
		default:
		}
	}
	span.SetAttributes(attribute.Int("samples", len(samples)))
	return samples, nil
}

// verify checks s against the linear reference, truncated the way the
// device truncates to bufLen bytes.
func verify(s Sample, bufLen int) error {
	want := strconv.FormatInt(fibonacci.Linear(s.Position), 10)
	if len(want) > bufLen {
		want = want[:bufLen]
	}
	if s.Text != want {
		return apperrors.MismatchError{Index: s.Index, Got: s.Text, Want: want}
	}
	return nil
}
