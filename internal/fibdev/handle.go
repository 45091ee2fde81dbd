package fibdev

import (
	"github.com/google/uuid"

	"github.com/agbru/fibdev/internal/fibonacci"
	"github.com/agbru/fibdev/internal/logging"
)

// Handle is an open session on a Device. It carries its own position,
// starting at 0.
//
// Handle methods remain callable after Release: like the device itself they
// do not check ownership, and a second Release frees whatever session is
// held at that moment.
type Handle struct {
	id     uuid.UUID
	dev    *Device
	cursor Cursor
}

// ID returns the handle identifier.
func (h *Handle) ID() uuid.UUID { return h.id }

// Position returns the current position.
func (h *Handle) Position() int64 { return h.cursor.Position() }

// Seek moves the position and returns it. Out-of-range targets are clamped
// to [0, Bound]; the error is always nil and exists to satisfy io.Seeker.
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	pos := h.cursor.Seek(offset, whence)
	h.dev.observer.Seeked(pos)
	return pos, nil
}

// Write computes the term at the current position and delivers it as decimal
// ASCII into buf[0:n]. It returns the nanoseconds spent in the fast-doubling
// computation; the term itself is only available through buf.
//
// The linear algorithm runs first on every call, outside the timed section,
// and its result is discarded. Transfer failures surface as ErrOutOfMemory or
// ErrFault; the elapsed time is still returned alongside them.
func (h *Handle) Write(buf []byte, n int) (int64, error) {
	d := h.dev
	pos := h.cursor.Position()

	basic := fibonacci.Linear(pos)
	d.logger.Debug("linear", logging.Int64("n", pos), logging.Int64("value", basic))

	value, elapsed := d.probe.Measure(func() int64 {
		return fibonacci.FastDoubling(pos)
	})
	d.logger.Debug("fast doubling",
		logging.Int64("n", pos),
		logging.Int64("value", value),
		logging.Int64("elapsed_ns", elapsed))

	err := d.transfer.Deliver(buf, n, value)
	if err != nil {
		d.logger.Error("copy to caller failed", err,
			logging.Int64("n", pos), logging.Int("len", n))
	}
	d.observer.Wrote(pos, elapsed, err)
	return elapsed, err
}

// Read is a stub kept for interface compatibility: it ignores pos, computes
// nothing and always returns 0.
func (h *Handle) Read(pos int64) int64 {
	_ = pos
	return 0
}

// Release frees the device session. It always succeeds.
func (h *Handle) Release() {
	h.dev.release(h)
}
