package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestWeekday(t *testing.T) {
	// 2026-03-02 is a Monday
	assert.Equal(t, 0, Weekday(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	// 2026-03-08 is a Sunday
	assert.Equal(t, 6, Weekday(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	// 2026-03-04 is a Wednesday
	assert.Equal(t, 2, Weekday(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestNewAvailabilityTemplate(t *testing.T) {
	owner := UserOwner(uuid.New())
	start, _ := NewTimeOfDay(9, 0)
	end, _ := NewTimeOfDay(17, 0)

	t.Run("creates template", func(t *testing.T) {
		tmpl, err := NewAvailabilityTemplate(owner, 0, start, end)
		require.NoError(t, err)
		assert.Equal(t, 0, tmpl.DayOfWeek())
	})

	t.Run("rejects invalid weekday", func(t *testing.T) {
		_, err := NewAvailabilityTemplate(owner, 7, start, end)
		assert.ErrorIs(t, err, ErrInvalidWeekday)
	})

	t.Run("rejects inverted times", func(t *testing.T) {
		_, err := NewAvailabilityTemplate(owner, 0, end, start)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	})
}

func TestTemplateMaterialize(t *testing.T) {
	owner := UserOwner(uuid.New())
	start, _ := NewTimeOfDay(8, 30)
	end, _ := NewTimeOfDay(12, 0)
	tmpl, err := NewAvailabilityTemplate(owner, 0, start, end)
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	w := tmpl.Materialize(date, time.UTC)

	assert.True(t, w.Start().Equal(time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)))
	assert.True(t, w.End().Equal(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 210, w.Minutes())
}

func TestDefaultWindow(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	w := DefaultWindow(date, time.UTC)

	assert.Equal(t, 9, w.Start().Hour())
	assert.Equal(t, 17, w.End().Hour())
	assert.Equal(t, 480, w.Minutes())
}

func TestOwner(t *testing.T) {
	t.Run("user owner", func(t *testing.T) {
		id := uuid.New()
		owner := UserOwner(id)
		assert.True(t, owner.IsUser())
		assert.False(t, owner.IsTeam())
		assert.Equal(t, id, owner.UserID())
	})

	t.Run("rejects both or neither set", func(t *testing.T) {
		_, err := NewOwner(uuid.New(), uuid.New())
		assert.ErrorIs(t, err, ErrInvalidOwner)

		_, err = NewOwner(uuid.Nil, uuid.Nil)
		assert.ErrorIs(t, err, ErrInvalidOwner)
	})
}
