package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type calculatorFixture struct {
	calc    *ReviewCalculator
	reviews *fakeReviewRepo
	blocks  *fakeBlockRepo
	source  *fakeTaskSource
}

func newCalculatorFixture() *calculatorFixture {
	reviews := &fakeReviewRepo{}
	blocks := &fakeBlockRepo{}
	source := &fakeTaskSource{}
	return &calculatorFixture{
		calc:    NewReviewCalculator(reviews, blocks, source, slog.New(slog.NewTextHandler(io.Discard, nil))),
		reviews: reviews,
		blocks:  blocks,
		source:  source,
	}
}

func completedBlock(t *testing.T, userID, taskID uuid.UUID, start time.Time, minutes int) *plannerDomain.TimeBlock {
	t.Helper()
	block, err := plannerDomain.NewWorkBlock(plannerDomain.UserOwner(userID), taskID, "Work",
		start, start.Add(time.Duration(minutes)*time.Minute), plannerDomain.BlockSourceAuto)
	require.NoError(t, err)
	require.NoError(t, block.Commit())
	require.NoError(t, block.Complete())
	return block
}

func completedBreak(t *testing.T, userID uuid.UUID, start time.Time, minutes int) *plannerDomain.TimeBlock {
	t.Helper()
	block, err := plannerDomain.NewBreakBlock(plannerDomain.UserOwner(userID), "Break",
		start, start.Add(time.Duration(minutes)*time.Minute), plannerDomain.BlockSourceAuto)
	require.NoError(t, err)
	require.NoError(t, block.Commit())
	require.NoError(t, block.Complete())
	return block
}

func completedTask(id uuid.UUID, completedAt time.Time) *tasksDomain.Task {
	return tasksDomain.FromRecord(tasksDomain.TaskRecord{
		ID: id, Title: "Done", Priority: tasksDomain.PriorityMedium,
		IsCompleted: true, CompletedAt: &completedAt, EstimatedMinutes: 30,
	})
}

func TestComputeDailyReview(t *testing.T) {
	f := newCalculatorFixture()
	userID := uuid.New()
	doneTask := uuid.New()
	openTask := uuid.New()

	f.blocks.blocks = append(f.blocks.blocks,
		completedBlock(t, userID, doneTask, monday.Add(9*time.Hour), 150),
		completedBreak(t, userID, monday.Add(11*time.Hour+30*time.Minute), 30),
		completedBlock(t, userID, openTask, monday.Add(13*time.Hour), 150),
	)
	f.source.tasks = []*tasksDomain.Task{
		completedTask(doneTask, monday.Add(11*time.Hour)),
		tasksDomain.FromRecord(tasksDomain.TaskRecord{ID: openTask, Priority: tasksDomain.PriorityMedium}),
	}

	review, err := f.calc.Compute(context.Background(), userID, monday)

	require.NoError(t, err)
	assert.Equal(t, 2, review.TasksPlanned())
	assert.Equal(t, 1, review.TasksCompleted())
	assert.Equal(t, 50.0, review.CompletionRate())
	assert.Equal(t, 300, review.FocusTimeMinutes())
	assert.Equal(t, 30, review.BreakTimeMinutes())
	assert.Equal(t, 0, review.CurrentStreak(), "50% misses the streak threshold")
	assert.GreaterOrEqual(t, review.ProductivityScore(), 0.0)
	assert.LessOrEqual(t, review.ProductivityScore(), 100.0)
}

func TestComputeIsIdempotent(t *testing.T) {
	f := newCalculatorFixture()
	userID := uuid.New()
	taskID := uuid.New()

	f.blocks.blocks = append(f.blocks.blocks,
		completedBlock(t, userID, taskID, monday.Add(9*time.Hour), 60))
	f.source.tasks = []*tasksDomain.Task{completedTask(taskID, monday.Add(10*time.Hour))}

	first, err := f.calc.Compute(context.Background(), userID, monday)
	require.NoError(t, err)

	second, err := f.calc.Compute(context.Background(), userID, monday)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID(), "same row recomputed, not duplicated")
	assert.Equal(t, first.ProductivityScore(), second.ProductivityScore())
	assert.Len(t, f.reviews.reviews, 1)
}

func TestComputeExtendsStreak(t *testing.T) {
	f := newCalculatorFixture()
	userID := uuid.New()

	// Sunday's review carried a streak of 2.
	sunday := monday.AddDate(0, 0, -1)
	prior, err := f.calc.Compute(context.Background(), userID, sunday)
	require.NoError(t, err)
	require.Equal(t, 0, prior.CurrentStreak())

	taskSun := uuid.New()
	f.blocks.blocks = append(f.blocks.blocks,
		completedBlock(t, userID, taskSun, sunday.Add(9*time.Hour), 60))
	f.source.tasks = []*tasksDomain.Task{completedTask(taskSun, sunday.Add(10*time.Hour))}
	prior, err = f.calc.Compute(context.Background(), userID, sunday)
	require.NoError(t, err)
	require.Equal(t, 1, prior.CurrentStreak())

	// Monday completes everything planned, extending the streak.
	taskMon := uuid.New()
	f.blocks.blocks = append(f.blocks.blocks,
		completedBlock(t, userID, taskMon, monday.Add(9*time.Hour), 60))
	f.source.tasks = append(f.source.tasks, completedTask(taskMon, monday.Add(10*time.Hour)))

	review, err := f.calc.Compute(context.Background(), userID, monday)
	require.NoError(t, err)
	assert.Equal(t, 2, review.CurrentStreak())
}

func TestComputeEmptyDay(t *testing.T) {
	f := newCalculatorFixture()

	review, err := f.calc.Compute(context.Background(), uuid.New(), monday)

	require.NoError(t, err)
	assert.Equal(t, 0, review.TasksPlanned())
	assert.Equal(t, 0.0, review.CompletionRate())
	assert.Equal(t, 0.0, review.ProductivityScore())
}
