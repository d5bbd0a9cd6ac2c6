package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plannedBlock(t *testing.T, userID, taskID uuid.UUID, start time.Time, minutes int) *domain.TimeBlock {
	t.Helper()
	block, err := domain.NewWorkBlock(domain.UserOwner(userID), taskID, "Carryover",
		start, start.Add(time.Duration(minutes)*time.Minute), domain.BlockSourceAuto)
	require.NoError(t, err)
	return block
}

func TestReplanMovesIncompleteWork(t *testing.T) {
	userID := uuid.New()
	task := tasksDomain.FromRecord(tasksDomain.TaskRecord{
		ID: uuid.New(), Title: "Carryover", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 50,
	})
	source := &fakeTaskSource{tasks: []*tasksDomain.Task{task}}

	repo := &fakeBlockRepo{}
	repo.blocks = append(repo.blocks,
		plannedBlock(t, userID, task.ID(), monday.Add(9*time.Hour), 50),
		// Future planned block that must be cleared before regeneration.
		plannedBlock(t, userID, task.ID(), monday.AddDate(0, 0, 1).Add(9*time.Hour), 50),
	)

	uow := &fakeUnitOfWork{}
	publisher := &capturePublisher{}
	handler := NewReplanHandler(newScheduler(source), repo, source, uow, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := handler.Handle(context.Background(), ReplanCommand{UserID: userID, FromDate: monday.Add(10 * time.Hour)})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Reschedules)
	require.Len(t, result.TaskIDs, 1)
	assert.Equal(t, task.ID(), result.TaskIDs[0])
	require.NotEmpty(t, result.Blocks)

	// The task's scheduling hint points at its first regenerated block.
	hint, ok := source.startAts[task.ID()]
	require.True(t, ok)
	assert.True(t, hint.Equal(result.Blocks[0].Start))

	require.Len(t, publisher.routingKeys, 1)
	assert.Equal(t, "schedule.rescheduled", publisher.routingKeys[0])
	assert.Equal(t, 1, uow.committed)
}

func TestReplanHonorsTargetDate(t *testing.T) {
	userID := uuid.New()
	task := tasksDomain.FromRecord(tasksDomain.TaskRecord{
		ID: uuid.New(), Title: "Carryover", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 50,
	})
	source := &fakeTaskSource{tasks: []*tasksDomain.Task{task}}

	repo := &fakeBlockRepo{}
	repo.blocks = append(repo.blocks, plannedBlock(t, userID, task.ID(), monday.Add(9*time.Hour), 50))

	handler := NewReplanHandler(newScheduler(source), repo, source, &fakeUnitOfWork{}, &capturePublisher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	target := monday.AddDate(0, 0, 14)
	result, err := handler.Handle(context.Background(), ReplanCommand{UserID: userID, FromDate: monday, ToDate: &target})

	require.NoError(t, err)
	require.NotEmpty(t, result.Blocks)
	for _, b := range result.Blocks {
		assert.False(t, b.Start.Before(target), "block %q lands before the target date", b.Title)
		assert.True(t, b.Start.Before(target.AddDate(0, 0, 7)), "block %q lands past the target week", b.Title)
	}
}

func TestReplanLeavesUnrelatedBlocksAlone(t *testing.T) {
	userID := uuid.New()
	task := tasksDomain.FromRecord(tasksDomain.TaskRecord{
		ID: uuid.New(), Title: "Carryover", Priority: tasksDomain.PriorityHigh, EstimatedMinutes: 50,
	})
	source := &fakeTaskSource{tasks: []*tasksDomain.Task{task}}

	otherTaskID := uuid.New()
	distant := plannedBlock(t, userID, otherTaskID, monday.AddDate(0, 0, 21).Add(9*time.Hour), 50)
	stale := plannedBlock(t, userID, task.ID(), monday.AddDate(0, 0, 2).Add(9*time.Hour), 50)

	repo := &fakeBlockRepo{}
	repo.blocks = append(repo.blocks,
		plannedBlock(t, userID, task.ID(), monday.Add(9*time.Hour), 50),
		stale,
		distant,
	)

	handler := NewReplanHandler(newScheduler(source), repo, source, &fakeUnitOfWork{}, &capturePublisher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := handler.Handle(context.Background(), ReplanCommand{UserID: userID, FromDate: monday})
	require.NoError(t, err)

	remaining := make(map[uuid.UUID]bool)
	for _, b := range repo.blocks {
		remaining[b.ID()] = true
	}
	assert.True(t, remaining[distant.ID()], "the other task's block must survive the replan")
	assert.False(t, remaining[stale.ID()], "the replanned task's old blocks must be cleared")
}

func TestReplanNoIncompleteWork(t *testing.T) {
	userID := uuid.New()
	source := &fakeTaskSource{}
	repo := &fakeBlockRepo{}
	uow := &fakeUnitOfWork{}
	publisher := &capturePublisher{}
	handler := NewReplanHandler(newScheduler(source), repo, source, uow, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := handler.Handle(context.Background(), ReplanCommand{UserID: userID, FromDate: monday})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Reschedules)
	assert.Empty(t, result.TaskIDs)
	assert.Empty(t, publisher.routingKeys)
	assert.Equal(t, 0, uow.begun, "no transaction opened when nothing to move")
}

func TestReplanSkipsCompletedTasks(t *testing.T) {
	userID := uuid.New()
	completedAt := monday.Add(15 * time.Hour)
	task := tasksDomain.FromRecord(tasksDomain.TaskRecord{
		ID: uuid.New(), Title: "Done already", Priority: tasksDomain.PriorityHigh,
		EstimatedMinutes: 50, IsCompleted: true, CompletedAt: &completedAt,
	})
	source := &fakeTaskSource{tasks: []*tasksDomain.Task{task}}

	repo := &fakeBlockRepo{}
	repo.blocks = append(repo.blocks, plannedBlock(t, userID, task.ID(), monday.Add(9*time.Hour), 50))

	handler := NewReplanHandler(newScheduler(source), repo, source, &fakeUnitOfWork{}, &capturePublisher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := handler.Handle(context.Background(), ReplanCommand{UserID: userID, FromDate: monday})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Reschedules)
}
