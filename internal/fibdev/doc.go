// Package fibdev implements the Fibonacci compute device: a single,
// exclusively-held session whose handle behaves like a seekable cursor over
// the indices [0, Bound].
//
// A Device is the composition root. Open acquires its session guard without
// blocking; the returned Handle carries the cursor and exposes the device
// operations:
//
//	h, err := dev.Open()         // ErrBusy while another handle holds the session
//	h.Seek(10, fibdev.SeekAbsolute)
//	buf := make([]byte, 32)
//	ns, err := h.Write(buf, len(buf)) // buf now holds "55", ns the timed cost
//	h.Release()
//
// Write has two output sinks by contract: the computed term is delivered as
// decimal ASCII into the caller's buffer, and the return value carries the
// elapsed nanoseconds of the fast-doubling computation. The linear algorithm
// is evaluated on every Write as well, before the timed section, and its
// result is only logged.
//
// The package provides no protection against a single holder issuing
// concurrent calls on its own Handle; callers serialize their own calls.
package fibdev

//go:generate mockgen -destination=mocks/mock_fibdev.go -package=mocks github.com/agbru/fibdev/internal/fibdev Allocator,Clock,Observer
