package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"critical", PriorityCritical, false},
		{"URGENT", PriorityUrgent, false},
		{"High", PriorityHigh, false},
		{"medium", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"whenever", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 100.0, PriorityCritical.Weight())
	assert.Equal(t, 90.0, PriorityUrgent.Weight())
	assert.Equal(t, 70.0, PriorityHigh.Weight())
	assert.Equal(t, 40.0, PriorityMedium.Weight())
	assert.Equal(t, 10.0, PriorityLow.Weight())
}

func TestEstimatedDuration(t *testing.T) {
	t.Run("prefers minutes", func(t *testing.T) {
		task := FromRecord(TaskRecord{ID: uuid.New(), EstimatedMinutes: 30, EstimatedHours: 2})
		assert.Equal(t, 30, task.EstimatedDuration())
	})

	t.Run("falls back to hours", func(t *testing.T) {
		task := FromRecord(TaskRecord{ID: uuid.New(), EstimatedHours: 1.5})
		assert.Equal(t, 90, task.EstimatedDuration())
	})

	t.Run("defaults when no estimate", func(t *testing.T) {
		task := FromRecord(TaskRecord{ID: uuid.New()})
		assert.Equal(t, DefaultEstimateMinutes, task.EstimatedDuration())
		assert.False(t, task.HasEstimate())
	})
}

func TestDependenciesSatisfied(t *testing.T) {
	blocked := FromRecord(TaskRecord{
		ID:               uuid.New(),
		DependencyIDs:    []uuid.UUID{uuid.New()},
		OpenDependencies: 1,
	})
	assert.False(t, blocked.DependenciesSatisfied())

	ready := FromRecord(TaskRecord{
		ID:            uuid.New(),
		DependencyIDs: []uuid.UUID{uuid.New()},
	})
	assert.True(t, ready.DependenciesSatisfied())
}

func TestHasWorkGoal(t *testing.T) {
	linked := FromRecord(TaskRecord{ID: uuid.New(), WorkGoalID: uuid.New()})
	assert.True(t, linked.HasWorkGoal())

	unlinked := FromRecord(TaskRecord{ID: uuid.New()})
	assert.False(t, unlinked.HasWorkGoal())
}

func TestFromRecordCarriesTimestamps(t *testing.T) {
	due := time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC)
	task := FromRecord(TaskRecord{ID: uuid.New(), DueDate: &due, IsHardDue: true})

	require.NotNil(t, task.DueDate())
	assert.True(t, task.DueDate().Equal(due))
	assert.True(t, task.IsHardDue())
}
