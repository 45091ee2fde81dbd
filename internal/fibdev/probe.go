package fibdev

// Clock returns monotonic nanosecond readings. Only differences between two
// readings are meaningful.
type Clock interface {
	Nanotime() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

// Nanotime calls f.
func (f ClockFunc) Nanotime() int64 { return f() }

// Probe times a single computation.
type Probe struct {
	clock Clock
}

// NewProbe returns a probe reading the given clock, or MonotonicClock when
// clock is nil.
func NewProbe(clock Clock) *Probe {
	if clock == nil {
		clock = MonotonicClock()
	}
	return &Probe{clock: clock}
}

// Measure runs fn between two clock readings and returns its result with the
// elapsed nanoseconds. The elapsed time is never negative.
func (p *Probe) Measure(fn func() int64) (result, elapsedNs int64) {
	start := p.clock.Nanotime()
	result = fn()
	end := p.clock.Nanotime()
	if elapsedNs = end - start; elapsedNs < 0 {
		elapsedNs = 0
	}
	return result, elapsedNs
}
