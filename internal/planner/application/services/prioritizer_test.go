package services

import (
	"context"
	"testing"
	"time"

	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskWith(rec tasksDomain.TaskRecord) *tasksDomain.Task {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return tasksDomain.FromRecord(rec)
}

func TestScore(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("priority weight alone", func(t *testing.T) {
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityMedium, EstimatedMinutes: 60})
		assert.Equal(t, 40.0, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("overdue adds 200", func(t *testing.T) {
		due := now.Add(-time.Hour)
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityLow, DueDate: &due, EstimatedMinutes: 60})
		assert.Equal(t, 10.0+200, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("due within a day adds 100", func(t *testing.T) {
		due := now.Add(2 * time.Hour)
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityCritical, DueDate: &due, EstimatedMinutes: 60})
		assert.Equal(t, 100.0+100, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("due within three days adds 50", func(t *testing.T) {
		due := now.Add(48 * time.Hour)
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityLow, DueDate: &due, EstimatedMinutes: 60})
		assert.Equal(t, 10.0+50, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("distant due date decays", func(t *testing.T) {
		due := now.Add(10 * 24 * time.Hour)
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityLow, DueDate: &due, EstimatedMinutes: 60})
		assert.Equal(t, 10.0+40, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("very distant due date adds nothing", func(t *testing.T) {
		due := now.Add(100 * 24 * time.Hour)
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityLow, DueDate: &due, EstimatedMinutes: 60})
		assert.Equal(t, 10.0, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("hard due and work goal bonuses stack", func(t *testing.T) {
		task := taskWith(tasksDomain.TaskRecord{
			Priority:         tasksDomain.PriorityHigh,
			IsHardDue:        true,
			WorkGoalID:       uuid.New(),
			EstimatedMinutes: 60,
		})
		assert.Equal(t, 70.0+50+30, Score(task, now, DefaultOptimalDuration))
	})

	t.Run("quick win bonus under optimal duration", func(t *testing.T) {
		task := taskWith(tasksDomain.TaskRecord{Priority: tasksDomain.PriorityLow, EstimatedMinutes: 30})
		assert.Equal(t, 10.0+20, Score(task, now, DefaultOptimalDuration))
	})
}

func TestEligible(t *testing.T) {
	scopeStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	scopeEnd := scopeStart.AddDate(0, 0, 1)

	t.Run("completed tasks are excluded", func(t *testing.T) {
		task := taskWith(tasksDomain.TaskRecord{IsCompleted: true})
		assert.False(t, Eligible(task, scopeStart, scopeEnd))
	})

	t.Run("snoozed beyond scope end is excluded", func(t *testing.T) {
		snoozed := scopeEnd.Add(time.Hour)
		task := taskWith(tasksDomain.TaskRecord{SnoozedUntil: &snoozed})
		assert.False(t, Eligible(task, scopeStart, scopeEnd))
	})

	t.Run("snoozed within scope is eligible", func(t *testing.T) {
		snoozed := scopeStart.Add(time.Hour)
		task := taskWith(tasksDomain.TaskRecord{SnoozedUntil: &snoozed})
		assert.True(t, Eligible(task, scopeStart, scopeEnd))
	})

	t.Run("future backlog date is excluded", func(t *testing.T) {
		backlog := scopeStart.Add(48 * time.Hour)
		task := taskWith(tasksDomain.TaskRecord{BacklogDate: &backlog})
		assert.False(t, Eligible(task, scopeStart, scopeEnd))
	})

	t.Run("open dependencies are excluded", func(t *testing.T) {
		task := taskWith(tasksDomain.TaskRecord{OpenDependencies: 2})
		assert.False(t, Eligible(task, scopeStart, scopeEnd))
	})
}

func TestPrioritizeOrdering(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	dueSoon := now.Add(2 * time.Hour)

	critical := taskWith(tasksDomain.TaskRecord{
		Title: "Fix outage", Priority: tasksDomain.PriorityCritical, DueDate: &dueSoon, EstimatedMinutes: 30,
	})
	medium := taskWith(tasksDomain.TaskRecord{
		Title: "Write docs", Priority: tasksDomain.PriorityMedium, EstimatedMinutes: 60,
	})
	low := taskWith(tasksDomain.TaskRecord{
		Title: "Tidy backlog", Priority: tasksDomain.PriorityLow, EstimatedMinutes: 60,
	})

	source := &fakeTaskSource{tasks: []*tasksDomain.Task{low, medium, critical}}
	prioritizer := NewPrioritizer(source)

	scored, err := prioritizer.Prioritize(context.Background(), uuid.New(), uuid.Nil,
		now, now.AddDate(0, 0, 1), now, DefaultOptimalDuration)

	require.NoError(t, err)
	require.Len(t, scored, 3)
	assert.Equal(t, "Fix outage", scored[0].Task.Title())
	assert.Equal(t, "Write docs", scored[1].Task.Title())
	assert.Equal(t, "Tidy backlog", scored[2].Task.Title())
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
}

func TestPrioritizeTieBreakByDueDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	nearDue := now.Add(30 * time.Hour)
	farDue := now.Add(60 * time.Hour)

	first := taskWith(tasksDomain.TaskRecord{
		Title: "Near due", Priority: tasksDomain.PriorityMedium, DueDate: &nearDue, EstimatedMinutes: 60,
	})
	second := taskWith(tasksDomain.TaskRecord{
		Title: "Far due", Priority: tasksDomain.PriorityMedium, DueDate: &farDue, EstimatedMinutes: 60,
	})

	source := &fakeTaskSource{tasks: []*tasksDomain.Task{second, first}}
	prioritizer := NewPrioritizer(source)

	scored, err := prioritizer.Prioritize(context.Background(), uuid.New(), uuid.Nil,
		now, now.AddDate(0, 0, 1), now, DefaultOptimalDuration)

	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, scored[0].Score, scored[1].Score, "same urgency tier scores equal")
	assert.Equal(t, "Near due", scored[0].Task.Title())
}
