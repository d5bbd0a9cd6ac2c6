package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedulerFixture struct {
	scheduler *Scheduler
	templates *fakeTemplateRepo
	events    *fakeEventRepo
	policies  *fakePolicyRepo
	source    *fakeTaskSource
	insights  *fakeInsightProvider
	cache     *cache.MemoryCache
}

func newSchedulerFixture() *schedulerFixture {
	templates := &fakeTemplateRepo{}
	events := &fakeEventRepo{}
	policies := &fakePolicyRepo{}
	source := &fakeTaskSource{}
	insights := &fakeInsightProvider{}
	memCache := cache.NewMemoryCache()

	resolver := NewAvailabilityResolver(templates, events, &fakeTeamResolver{}, time.UTC)
	scheduler := NewScheduler(
		resolver,
		NewPrioritizer(source),
		NewPacker(),
		policies,
		insights,
		memCache,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return &schedulerFixture{
		scheduler: scheduler,
		templates: templates,
		events:    events,
		policies:  policies,
		source:    source,
		insights:  insights,
		cache:     memCache,
	}
}

func TestParseScope(t *testing.T) {
	day, err := ParseScope("day")
	require.NoError(t, err)
	assert.Equal(t, ScopeDay, day)

	week, err := ParseScope("week")
	require.NoError(t, err)
	assert.Equal(t, ScopeWeek, week)

	_, err = ParseScope("month")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestPreviewEmptyWhenNoTasks(t *testing.T) {
	f := newSchedulerFixture()

	result, err := f.scheduler.Preview(context.Background(), uuid.New(), ScopeDay, monday)

	require.NoError(t, err)
	assert.Empty(t, result.Blocks)
	assert.Equal(t, 480, result.WindowMinutes, "default workday window still counted")
	assert.Equal(t, 0.0, result.CapacityUsage)
}

func TestPreviewPacksDaySchedule(t *testing.T) {
	f := newSchedulerFixture()
	userID := uuid.New()
	f.source.tasks = []*tasksDomain.Task{
		tasksDomain.FromRecord(tasksDomain.TaskRecord{
			ID: uuid.New(), Title: "Deep work", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 50,
		}),
	}

	result, err := f.scheduler.Preview(context.Background(), userID, ScopeDay, monday)

	require.NoError(t, err)
	assert.Equal(t, 50, result.PlannedMinutes)
	assert.False(t, result.FromCache)
	require.NotEmpty(t, result.Blocks)
	assert.Equal(t, "Deep work", result.Blocks[0].Title)
}

func TestPreviewServesCachedResult(t *testing.T) {
	f := newSchedulerFixture()
	userID := uuid.New()
	f.source.tasks = []*tasksDomain.Task{
		tasksDomain.FromRecord(tasksDomain.TaskRecord{
			ID: uuid.New(), Title: "Deep work", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 50,
		}),
	}

	first, err := f.scheduler.Preview(context.Background(), userID, ScopeDay, monday)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	// Changing the underlying data does not affect the cached preview.
	f.source.tasks = nil

	second, err := f.scheduler.Preview(context.Background(), userID, ScopeDay, monday)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.PlannedMinutes, second.PlannedMinutes)
	assert.Len(t, second.Blocks, len(first.Blocks))
}

func TestPreviewCacheIsScopedPerUser(t *testing.T) {
	f := newSchedulerFixture()
	f.source.tasks = []*tasksDomain.Task{
		tasksDomain.FromRecord(tasksDomain.TaskRecord{
			ID: uuid.New(), Title: "Deep work", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 50,
		}),
	}

	_, err := f.scheduler.Preview(context.Background(), uuid.New(), ScopeDay, monday)
	require.NoError(t, err)

	other, err := f.scheduler.Preview(context.Background(), uuid.New(), ScopeDay, monday)
	require.NoError(t, err)
	assert.False(t, other.FromCache)
}

func TestPreviewWeekScope(t *testing.T) {
	f := newSchedulerFixture()
	f.source.tasks = []*tasksDomain.Task{
		tasksDomain.FromRecord(tasksDomain.TaskRecord{
			ID: uuid.New(), Title: "Big project", Priority: tasksDomain.PriorityHigh, EstimatedHours: 20,
		}),
	}

	result, err := f.scheduler.Preview(context.Background(), uuid.New(), ScopeWeek, monday)

	require.NoError(t, err)
	assert.Equal(t, 7*480, result.WindowMinutes)
	assert.Equal(t, 20*60, result.PlannedMinutes)
}

func TestPreviewUsesBreakPolicy(t *testing.T) {
	f := newSchedulerFixture()
	userID := uuid.New()
	policy, err := plannerDomain.NewBreakPolicy(plannerDomain.UserOwner(userID), 50, 10, 20, 4)
	require.NoError(t, err)
	require.NoError(t, f.policies.Save(context.Background(), policy))

	f.source.tasks = []*tasksDomain.Task{
		tasksDomain.FromRecord(tasksDomain.TaskRecord{
			ID: uuid.New(), Title: "Deep work", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 120,
		}),
	}

	result, err := f.scheduler.Preview(context.Background(), userID, ScopeDay, monday)

	require.NoError(t, err)
	require.NotEmpty(t, result.Blocks)
	assert.Equal(t, 50, int(result.Blocks[0].End.Sub(result.Blocks[0].Start)/time.Minute))
}

func TestReorderByPeakHours(t *testing.T) {
	morning, err := plannerDomain.NewWindow(monday.Add(9*time.Hour), monday.Add(11*time.Hour))
	require.NoError(t, err)
	afternoon, err := plannerDomain.NewWindow(monday.Add(14*time.Hour), monday.Add(16*time.Hour))
	require.NoError(t, err)

	reordered := reorderByPeakHours([]plannerDomain.Window{morning, afternoon}, []int{14, 15})

	require.Len(t, reordered, 2)
	assert.True(t, reordered[0].Start().Equal(afternoon.Start()), "peak window moves first")
	assert.True(t, reordered[1].Start().Equal(morning.Start()))

	unchanged := reorderByPeakHours([]plannerDomain.Window{morning, afternoon}, nil)
	assert.True(t, unchanged[0].Start().Equal(morning.Start()))
}

func TestMaterializeBlocks(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	result := &ScheduleResult{
		UserID: userID,
		Scope:  ScopeDay,
		Date:   monday,
		Blocks: []PlannedBlock{
			{TaskID: taskID, Title: "Work", Start: monday.Add(9 * time.Hour), End: monday.Add(9*time.Hour + 25*time.Minute)},
			{Title: "Break", Start: monday.Add(9*time.Hour + 25*time.Minute), End: monday.Add(9*time.Hour + 30*time.Minute), IsBreak: true},
		},
	}

	blocks, err := MaterializeBlocks(result)

	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, taskID, blocks[0].TaskID())
	assert.Equal(t, plannerDomain.BlockStatusPlanned, blocks[0].Status())
	assert.True(t, blocks[1].IsBreak())
	assert.Equal(t, userID, blocks[0].Owner().UserID())
}
