package fibdev

import (
	"github.com/google/uuid"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/logging"
)

// Device is the Fibonacci compute service. It owns the single session guard
// and the collaborators every Handle uses. The zero value is not usable;
// construct with New.
type Device struct {
	guard    Guard
	probe    *Probe
	transfer *Transfer
	logger   logging.Logger
	observer Observer
}

// Option configures a Device during construction.
type Option func(*Device)

// WithClock sets the clock used to time the fast-doubling computation.
func WithClock(c Clock) Option {
	return func(d *Device) { d.probe = NewProbe(c) }
}

// WithAllocator sets the allocator providing staging buffers.
func WithAllocator(a Allocator) Option {
	return func(d *Device) { d.transfer = NewTransfer(a) }
}

// WithLogger sets the device logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// WithObserver sets the event observer, typically a metrics recorder.
func WithObserver(o Observer) Option {
	return func(d *Device) { d.observer = o }
}

// New creates a Device with a free session.
func New(opts ...Option) *Device {
	d := &Device{}
	for _, opt := range opts {
		opt(d)
	}
	if d.probe == nil {
		d.probe = NewProbe(nil)
	}
	if d.transfer == nil {
		d.transfer = NewTransfer(nil)
	}
	if d.logger == nil {
		d.logger = logging.NopLogger{}
	}
	if d.observer == nil {
		d.observer = NopObserver{}
	}
	return d
}

// Open acquires the session without waiting. It returns ErrBusy, and does
// nothing else, when another handle holds the session.
func (d *Device) Open() (*Handle, error) {
	if !d.guard.TryAcquire() {
		d.logger.Info("fibdev is in use")
		d.observer.SessionBusy()
		return nil, apperrors.NewDeviceError("open", apperrors.EBUSY, nil)
	}
	h := &Handle{id: uuid.New(), dev: d}
	d.logger.Debug("session opened", logging.String("handle", h.id.String()))
	d.observer.SessionOpened()
	return h, nil
}

// Busy reports whether the session is currently held.
func (d *Device) Busy() bool {
	return d.guard.Locked()
}

// release frees the session on behalf of h without checking ownership.
func (d *Device) release(h *Handle) {
	wasHeld := d.guard.Release()
	if !wasHeld {
		d.logger.Info("release of a free session",
			logging.String("handle", h.id.String()),
			logging.Int64("position", h.cursor.Position()))
	} else {
		d.logger.Debug("session released", logging.String("handle", h.id.String()))
	}
	d.observer.SessionReleased(wasHeld)
}
