package tui

import "slices"

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// TimingWindow keeps the most recent write timings, oldest first.
type TimingWindow struct {
	samples []float64
	limit   int
}

// NewTimingWindow returns a window holding at most limit samples. Limits
// below one are raised to one.
func NewTimingWindow(limit int) *TimingWindow {
	return &TimingWindow{limit: max(limit, 1)}
}

// Push appends a sample, evicting the oldest once the window is full.
func (w *TimingWindow) Push(v float64) {
	if len(w.samples) == w.limit {
		w.samples = slices.Delete(w.samples, 0, 1)
	}
	w.samples = append(w.samples, v)
}

func (w *TimingWindow) Len() int { return len(w.samples) }
func (w *TimingWindow) Cap() int { return w.limit }

// Slice returns a copy of the samples, oldest first, or nil when empty.
func (w *TimingWindow) Slice() []float64 {
	if len(w.samples) == 0 {
		return nil
	}
	return slices.Clone(w.samples)
}

// Resize changes the limit and drops the oldest samples that no longer fit.
func (w *TimingWindow) Resize(limit int) {
	w.limit = max(limit, 1)
	if over := len(w.samples) - w.limit; over > 0 {
		w.samples = slices.Delete(w.samples, 0, over)
	}
}

// RenderSparkline draws percentages (0..100) as one block rune each.
// Out-of-range values are clamped.
func RenderSparkline(percent []float64) string {
	if len(percent) == 0 {
		return ""
	}
	top := len(sparkBlocks) - 1
	out := make([]rune, len(percent))
	for i, p := range percent {
		p = min(max(p, 0), 100)
		out[i] = sparkBlocks[min(int(p/100*float64(top)), top)]
	}
	return string(out)
}

// ScaleToPercent maps values onto 0..100 relative to their maximum, so
// timings of any magnitude fill the sparkline height.
func ScaleToPercent(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	peak := slices.Max(values)
	scaled := make([]float64, len(values))
	if peak <= 0 {
		return scaled
	}
	for i, v := range values {
		scaled[i] = v / peak * 100
	}
	return scaled
}
