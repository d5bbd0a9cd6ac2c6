package domain

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidWindow = errors.New("window end must be after start")

// MinWindowDuration is the smallest free fragment worth keeping after
// subtracting calendar events. Shorter slivers are discarded.
const MinWindowDuration = 15 * time.Minute

// Window is a half-open interval [start, end) during which the owner is
// free to work.
type Window struct {
	start time.Time
	end   time.Time
}

// NewWindow creates a window, rejecting inverted or empty ranges.
func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Minutes returns the window length in whole minutes.
func (w Window) Minutes() int {
	return int(w.Duration() / time.Minute)
}

// Overlaps reports whether the window overlaps the interval [start, end).
// Touching boundaries do not count as overlap.
func (w Window) Overlaps(start, end time.Time) bool {
	return w.start.Before(end) && w.end.After(start)
}

// Subtract removes the interval [start, end) from the window and returns
// the surviving fragments in chronological order. A fragment shorter than
// minDuration is dropped.
func (w Window) Subtract(start, end time.Time, minDuration time.Duration) []Window {
	if !w.Overlaps(start, end) {
		return []Window{w}
	}
	var out []Window
	if start.After(w.start) {
		if left := start.Sub(w.start); left >= minDuration {
			out = append(out, Window{start: w.start, end: start})
		}
	}
	if end.Before(w.end) {
		if right := w.end.Sub(end); right >= minDuration {
			out = append(out, Window{start: end, end: w.end})
		}
	}
	return out
}

// SubtractBusy removes every busy interval from every window. Windows with
// no overlap pass through unchanged; overlapping windows are split and
// fragments shorter than MinWindowDuration are discarded. Output preserves
// the chronological order of surviving fragments.
func SubtractBusy(windows []Window, busy []Window) []Window {
	out := windows
	for _, b := range busy {
		var next []Window
		for _, w := range out {
			next = append(next, w.Subtract(b.start, b.end, MinWindowDuration)...)
		}
		out = next
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start.Before(out[j].start)
	})
	return out
}

// MergeWindows collapses overlapping or touching windows into a minimal
// chronologically ordered set.
func MergeWindows(windows []Window) []Window {
	if len(windows) <= 1 {
		return windows
	}
	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	merged := []Window{sorted[0]}
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !w.start.After(last.end) {
			if w.end.After(last.end) {
				last.end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// TotalMinutes sums the durations of the given windows in whole minutes.
func TotalMinutes(windows []Window) int {
	total := 0
	for _, w := range windows {
		total += w.Minutes()
	}
	return total
}
