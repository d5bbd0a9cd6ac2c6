package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductivityInsight(t *testing.T) {
	userID := uuid.New()
	insight := NewProductivityInsight(userID, InsightPeakHours,
		map[string]any{"hours": []int{9, 10, 11}}, 60, 30)

	assert.Equal(t, InsightPeakHours, insight.Type())
	assert.Equal(t, 60.0, insight.ConfidenceScore())
	assert.Equal(t, 30, insight.SampleSize())
	assert.True(t, insight.IsActive())
	assert.Equal(t, InsightValidityDays, int(insight.ValidUntil().Sub(insight.ValidFrom()).Hours()/24))
}

func TestConfidenceClamped(t *testing.T) {
	over := NewProductivityInsight(uuid.New(), InsightTaskDuration, nil, 250, 50)
	assert.Equal(t, 100.0, over.ConfidenceScore())

	under := NewProductivityInsight(uuid.New(), InsightTaskDuration, nil, -5, 0)
	assert.Equal(t, 0.0, under.ConfidenceScore())
}

func TestInsightRefresh(t *testing.T) {
	insight := NewProductivityInsight(uuid.New(), InsightBreakPattern,
		map[string]any{"ratio": 0.25}, 30, 10)
	insight.Deactivate()
	require.False(t, insight.IsActive())

	insight.Refresh(map[string]any{"ratio": 0.2}, 45, 15)

	assert.True(t, insight.IsActive())
	assert.Equal(t, 45.0, insight.ConfidenceScore())
	assert.Equal(t, 15, insight.SampleSize())
	assert.Equal(t, 0.2, insight.Data()["ratio"])
}

func TestInsightIsExpired(t *testing.T) {
	insight := NewProductivityInsight(uuid.New(), InsightWeeklyTrend, nil, 50, 20)

	assert.False(t, insight.IsExpired(time.Now()))
	assert.True(t, insight.IsExpired(time.Now().AddDate(0, 0, InsightValidityDays+1)))
}

func TestAllInsightTypes(t *testing.T) {
	types := AllInsightTypes()
	assert.Len(t, types, 5)
	assert.Contains(t, types, InsightCompletionPattern)
}
