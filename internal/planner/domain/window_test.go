package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end time.Time) Window {
	t.Helper()
	w, err := NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestNewWindow(t *testing.T) {
	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewWindow(at(17, 0), at(9, 0))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("rejects empty range", func(t *testing.T) {
		_, err := NewWindow(at(9, 0), at(9, 0))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("reports duration in minutes", func(t *testing.T) {
		w := mustWindow(t, at(9, 0), at(17, 0))
		assert.Equal(t, 480, w.Minutes())
	})
}

func TestWindowSubtract(t *testing.T) {
	tests := []struct {
		name      string
		window    [2]time.Time
		busy      [2]time.Time
		wantSpans [][2]time.Time
	}{
		{
			name:      "busy in the middle splits the window",
			window:    [2]time.Time{at(9, 0), at(17, 0)},
			busy:      [2]time.Time{at(12, 0), at(13, 0)},
			wantSpans: [][2]time.Time{{at(9, 0), at(12, 0)}, {at(13, 0), at(17, 0)}},
		},
		{
			name:      "no overlap passes through",
			window:    [2]time.Time{at(9, 0), at(12, 0)},
			busy:      [2]time.Time{at(13, 0), at(14, 0)},
			wantSpans: [][2]time.Time{{at(9, 0), at(12, 0)}},
		},
		{
			name:      "touching boundary is not overlap",
			window:    [2]time.Time{at(9, 0), at(12, 0)},
			busy:      [2]time.Time{at(12, 0), at(13, 0)},
			wantSpans: [][2]time.Time{{at(9, 0), at(12, 0)}},
		},
		{
			name:      "busy covers the whole window",
			window:    [2]time.Time{at(10, 0), at(11, 0)},
			busy:      [2]time.Time{at(9, 0), at(12, 0)},
			wantSpans: nil,
		},
		{
			name:      "busy clips the start",
			window:    [2]time.Time{at(9, 0), at(12, 0)},
			busy:      [2]time.Time{at(8, 0), at(10, 0)},
			wantSpans: [][2]time.Time{{at(10, 0), at(12, 0)}},
		},
		{
			name:      "busy clips the end",
			window:    [2]time.Time{at(9, 0), at(12, 0)},
			busy:      [2]time.Time{at(11, 0), at(13, 0)},
			wantSpans: [][2]time.Time{{at(9, 0), at(11, 0)}},
		},
		{
			name:      "fragment below minimum is discarded",
			window:    [2]time.Time{at(9, 0), at(12, 0)},
			busy:      [2]time.Time{at(9, 10), at(12, 0)},
			wantSpans: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWindow(t, tt.window[0], tt.window[1])
			got := w.Subtract(tt.busy[0], tt.busy[1], MinWindowDuration)

			require.Len(t, got, len(tt.wantSpans))
			for i, span := range tt.wantSpans {
				assert.True(t, got[i].Start().Equal(span[0]), "fragment %d start", i)
				assert.True(t, got[i].End().Equal(span[1]), "fragment %d end", i)
			}
		})
	}
}

func TestSubtractBusy(t *testing.T) {
	t.Run("fragments never overlap busy intervals", func(t *testing.T) {
		windows := []Window{mustWindow(t, at(9, 0), at(17, 0))}
		busy := []Window{
			mustWindow(t, at(10, 0), at(11, 0)),
			mustWindow(t, at(14, 30), at(15, 0)),
		}

		got := SubtractBusy(windows, busy)

		for _, w := range got {
			for _, b := range busy {
				assert.False(t, w.Overlaps(b.Start(), b.End()),
					"fragment %s-%s overlaps busy %s-%s", w.Start(), w.End(), b.Start(), b.End())
			}
		}
	})

	t.Run("time is conserved when no fragment is discarded", func(t *testing.T) {
		windows := []Window{mustWindow(t, at(9, 0), at(17, 0))}
		busy := []Window{mustWindow(t, at(12, 0), at(13, 0))}

		got := SubtractBusy(windows, busy)

		assert.Equal(t, 480-60, TotalMinutes(got))
	})

	t.Run("output preserves chronological order", func(t *testing.T) {
		windows := []Window{
			mustWindow(t, at(9, 0), at(12, 0)),
			mustWindow(t, at(13, 0), at(17, 0)),
		}
		busy := []Window{mustWindow(t, at(10, 0), at(10, 30))}

		got := SubtractBusy(windows, busy)

		require.Len(t, got, 3)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].Start().After(got[i-1].Start()))
		}
	})

	t.Run("no busy intervals returns windows unchanged", func(t *testing.T) {
		windows := []Window{mustWindow(t, at(9, 0), at(17, 0))}
		got := SubtractBusy(windows, nil)
		require.Len(t, got, 1)
		assert.Equal(t, 480, got[0].Minutes())
	})
}

func TestMergeWindows(t *testing.T) {
	t.Run("merges overlapping windows", func(t *testing.T) {
		got := MergeWindows([]Window{
			mustWindow(t, at(9, 0), at(11, 0)),
			mustWindow(t, at(10, 0), at(12, 0)),
		})
		require.Len(t, got, 1)
		assert.True(t, got[0].Start().Equal(at(9, 0)))
		assert.True(t, got[0].End().Equal(at(12, 0)))
	})

	t.Run("merges touching windows", func(t *testing.T) {
		got := MergeWindows([]Window{
			mustWindow(t, at(9, 0), at(11, 0)),
			mustWindow(t, at(11, 0), at(12, 0)),
		})
		require.Len(t, got, 1)
		assert.Equal(t, 180, got[0].Minutes())
	})

	t.Run("keeps disjoint windows separate", func(t *testing.T) {
		got := MergeWindows([]Window{
			mustWindow(t, at(13, 0), at(14, 0)),
			mustWindow(t, at(9, 0), at(10, 0)),
		})
		require.Len(t, got, 2)
		assert.True(t, got[0].Start().Before(got[1].Start()))
	})
}
