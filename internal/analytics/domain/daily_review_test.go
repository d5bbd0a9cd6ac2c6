package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestApplyMetrics(t *testing.T) {
	t.Run("computes completion rate", func(t *testing.T) {
		review := NewDailyReview(uuid.New(), reviewDate)
		review.ApplyMetrics(10, 8, 200, 40, 0)

		assert.Equal(t, 80.0, review.CompletionRate())
		assert.Equal(t, 10, review.TasksPlanned())
		assert.Equal(t, 8, review.TasksCompleted())
	})

	t.Run("zero planned tasks yields zero rate", func(t *testing.T) {
		review := NewDailyReview(uuid.New(), reviewDate)
		review.ApplyMetrics(0, 0, 0, 0, 0)

		assert.Equal(t, 0.0, review.CompletionRate())
		assert.Equal(t, 0, review.CurrentStreak())
	})

	t.Run("break ratio bonus needs focus time", func(t *testing.T) {
		withFocus := NewDailyReview(uuid.New(), reviewDate)
		withFocus.ApplyMetrics(1, 1, 300, 60, 0)

		withoutFocus := NewDailyReview(uuid.New(), reviewDate)
		withoutFocus.ApplyMetrics(1, 1, 0, 60, 0)

		// 100*0.4 + 30 + 15 (perfect 20% ratio) + 2 (streak 1)
		assert.Equal(t, 87.0, withFocus.ProductivityScore())
		// 40 + 0 + 0 + 2
		assert.Equal(t, 42.0, withoutFocus.ProductivityScore())
	})

	t.Run("idempotent for unchanged inputs", func(t *testing.T) {
		review := NewDailyReview(uuid.New(), reviewDate)
		review.ApplyMetrics(5, 4, 150, 30, 2)
		first := review.ProductivityScore()
		firstStreak := review.CurrentStreak()

		review.ApplyMetrics(5, 4, 150, 30, 2)
		assert.Equal(t, first, review.ProductivityScore())
		assert.Equal(t, firstStreak, review.CurrentStreak())
	})
}

func TestProductivityScoreBounds(t *testing.T) {
	cases := []struct {
		name                       string
		planned, completed         int
		focus, breaks, prevStreak  int
	}{
		{"everything maxed", 10, 10, 600, 120, 50},
		{"nothing done", 10, 0, 0, 0, 0},
		{"no breaks", 5, 5, 400, 0, 3},
		{"excessive breaks", 5, 5, 60, 300, 0},
		{"no tasks planned", 0, 0, 200, 40, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			review := NewDailyReview(uuid.New(), reviewDate)
			review.ApplyMetrics(tc.planned, tc.completed, tc.focus, tc.breaks, tc.prevStreak)

			assert.GreaterOrEqual(t, review.ProductivityScore(), 0.0)
			assert.LessOrEqual(t, review.ProductivityScore(), 100.0)
		})
	}
}

func TestStreak(t *testing.T) {
	t.Run("extends previous streak at threshold", func(t *testing.T) {
		review := NewDailyReview(uuid.New(), reviewDate)
		review.ApplyMetrics(10, 7, 100, 20, 4)
		assert.Equal(t, 5, review.CurrentStreak())
	})

	t.Run("resets below threshold", func(t *testing.T) {
		review := NewDailyReview(uuid.New(), reviewDate)
		review.ApplyMetrics(10, 6, 100, 20, 4)
		assert.Equal(t, 0, review.CurrentStreak())
	})

	t.Run("starts at one with no prior record", func(t *testing.T) {
		review := NewDailyReview(uuid.New(), reviewDate)
		review.ApplyMetrics(1, 1, 60, 10, 0)
		assert.Equal(t, 1, review.CurrentStreak())
	})
}

func TestWriteJournal(t *testing.T) {
	review := NewDailyReview(uuid.New(), reviewDate)

	err := review.WriteJournal("Good day", "energized",
		[]string{"shipped the release"},
		[]string{"start standup earlier"},
		[]string{"review PRs", "plan sprint"})
	require.NoError(t, err)
	assert.Equal(t, "Good day", review.Summary())
	assert.Len(t, review.TomorrowTop(), 2)

	err = review.WriteJournal("", "", nil, nil, []string{"a", "b", "c", "d"})
	assert.ErrorIs(t, err, ErrTooManyTopTasks)
}

func TestNewDailyReviewTruncatesDate(t *testing.T) {
	review := NewDailyReview(uuid.New(), time.Date(2026, 3, 2, 14, 35, 12, 0, time.UTC))
	assert.True(t, review.Date().Equal(reviewDate))
}
