package fibdev

import "sync/atomic"

// Guard is the fail-fast exclusive session flag. Acquire never blocks and
// Release never checks who holds the session.
type Guard struct {
	locked atomic.Bool
}

// TryAcquire moves the guard from Free to Locked. It reports false, with no
// other side effect, when the guard is already Locked.
func (g *Guard) TryAcquire() bool {
	return g.locked.CompareAndSwap(false, true)
}

// Release moves the guard to Free unconditionally and reports whether it was
// Locked. A false result means a double or foreign release happened.
func (g *Guard) Release() bool {
	return g.locked.Swap(false)
}

// Locked reports whether a session is currently held.
func (g *Guard) Locked() bool {
	return g.locked.Load()
}
