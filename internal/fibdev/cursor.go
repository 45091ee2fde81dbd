package fibdev

import (
	"io"
	"math"

	"github.com/agbru/fibdev/internal/fibonacci"
)

// Bound is the highest position a cursor can hold.
const Bound = fibonacci.MaxIndex

// Seek modes. The values match io.SeekStart, io.SeekCurrent and io.SeekEnd so
// a Handle can be used wherever an io.Seeker is expected.
const (
	// SeekAbsolute targets the offset itself.
	SeekAbsolute = io.SeekStart
	// SeekRelative targets the current position plus the offset.
	SeekRelative = io.SeekCurrent
	// SeekFromBound targets Bound minus the offset. It is anchored to the
	// fixed upper bound, not to any notion of end of data.
	SeekFromBound = io.SeekEnd
)

// Cursor is a position clamped to [0, Bound].
type Cursor struct {
	pos int64
}

// Position returns the current position.
func (c *Cursor) Position() int64 { return c.pos }

// Seek moves the cursor and returns the new position. Targets outside
// [0, Bound] are clamped; an unknown whence targets 0.
func (c *Cursor) Seek(offset int64, whence int) int64 {
	var target int64
	switch whence {
	case SeekAbsolute:
		target = offset
	case SeekRelative:
		target = addSaturating(c.pos, offset)
	case SeekFromBound:
		target = subSaturating(Bound, offset)
	}
	c.pos = clamp(target)
	return c.pos
}

func clamp(v int64) int64 {
	switch {
	case v > Bound:
		return Bound
	case v < 0:
		return 0
	}
	return v
}

func addSaturating(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

func subSaturating(a, b int64) int64 {
	if b == math.MinInt64 {
		return math.MaxInt64
	}
	return addSaturating(a, -b)
}

// WhenceName returns the short name used by the shells and the HTTP API.
func WhenceName(whence int) string {
	switch whence {
	case SeekAbsolute:
		return "set"
	case SeekRelative:
		return "cur"
	case SeekFromBound:
		return "end"
	}
	return "unknown"
}

// ParseWhence maps "set", "cur" and "end" (and the empty string, meaning
// "set") to a seek mode.
func ParseWhence(name string) (int, bool) {
	switch name {
	case "", "set", "abs", "absolute":
		return SeekAbsolute, true
	case "cur", "rel", "relative":
		return SeekRelative, true
	case "end", "bound":
		return SeekFromBound, true
	}
	return 0, false
}
