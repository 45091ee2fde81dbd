package fibdev

// Observer receives device events. Implementations must be safe for
// concurrent use: Open races are reported from every contending goroutine.
type Observer interface {
	// SessionOpened is called after a successful Open.
	SessionOpened()
	// SessionBusy is called when Open is rejected.
	SessionBusy()
	// SessionReleased is called on every Release; wasHeld is false when the
	// session was already free.
	SessionReleased(wasHeld bool)
	// Seeked is called with the clamped position after each Seek.
	Seeked(position int64)
	// Wrote is called after each Write with the position, the timed cost and
	// the transfer error, if any.
	Wrote(position, elapsedNs int64, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) SessionOpened()            {}
func (NopObserver) SessionBusy()              {}
func (NopObserver) SessionReleased(bool)      {}
func (NopObserver) Seeked(int64)              {}
func (NopObserver) Wrote(int64, int64, error) {}
