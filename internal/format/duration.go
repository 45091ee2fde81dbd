// Package format renders durations and timing columns for terminal output.
package format

import (
	"fmt"
	"strconv"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatNanos formats a nanosecond count from the timing probe. Values
// under a microsecond keep full nanosecond precision.
func FormatNanos(ns int64) string {
	if ns < int64(time.Microsecond) {
		return strconv.FormatInt(ns, 10) + "ns"
	}
	if ns < int64(time.Millisecond) {
		return strconv.FormatFloat(float64(ns)/1e3, 'f', 2, 64) + "µs"
	}
	return FormatExecutionDuration(time.Duration(ns))
}
