//go:build unix

package fibdev

import (
	"time"

	"golang.org/x/sys/unix"
)

// MonotonicClock returns a clock reading CLOCK_MONOTONIC, the clock the
// kernel's ktime_get and the user-space harness both use. If the syscall
// fails the clock falls back to the runtime's monotonic time.
func MonotonicClock() Clock {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return runtimeClock()
	}
	return ClockFunc(func() int64 {
		var ts unix.Timespec
		if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
			return 0
		}
		return ts.Nano()
	})
}

func runtimeClock() Clock {
	base := time.Now()
	return ClockFunc(func() int64 { return int64(time.Since(base)) })
}
