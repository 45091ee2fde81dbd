//go:build !unix

package fibdev

import "time"

// MonotonicClock returns a clock backed by the runtime's monotonic time.
func MonotonicClock() Clock {
	base := time.Now()
	return ClockFunc(func() int64 { return int64(time.Since(base)) })
}
