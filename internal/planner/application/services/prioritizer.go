package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

// DefaultOptimalDuration is the quick-win threshold in minutes when no
// learned task duration insight is available.
const DefaultOptimalDuration = 45

// Score bonuses applied on top of the priority weight.
const (
	overdueBonus   = 200
	dueSoonBonus   = 100 // due within 24h
	dueNearBonus   = 50  // due within 72h
	hardDueBonus   = 50
	workGoalBonus  = 30
	quickWinBonus  = 20
	noDueDateHours = 24 * 365 // tasks without a due date sort as ~1 year out
)

// ScoredTask pairs a task with its computed scheduling score.
type ScoredTask struct {
	Task  *tasksDomain.Task
	Score float64
}

// Prioritizer selects eligible tasks and orders them by scheduling score.
type Prioritizer struct {
	source tasksDomain.Source
}

// NewPrioritizer creates a prioritizer over a task source.
func NewPrioritizer(source tasksDomain.Source) *Prioritizer {
	return &Prioritizer{source: source}
}

// Prioritize returns the user's eligible tasks for the scope sorted by
// score descending, ties broken by earliest due date.
func (p *Prioritizer) Prioritize(ctx context.Context, userID, teamID uuid.UUID, scopeStart, scopeEnd, now time.Time, optimalDuration int) ([]ScoredTask, error) {
	candidates, err := p.source.FindCandidates(ctx, tasksDomain.CandidateFilter{
		UserID:     userID,
		TeamID:     teamID,
		ScopeStart: scopeStart,
		ScopeEnd:   scopeEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("load task candidates for user %s: %w", userID, err)
	}

	scored := make([]ScoredTask, 0, len(candidates))
	for _, task := range candidates {
		if !Eligible(task, scopeStart, scopeEnd) {
			continue
		}
		scored = append(scored, ScoredTask{
			Task:  task,
			Score: Score(task, now, optimalDuration),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return hoursUntilDue(scored[i].Task, now) < hoursUntilDue(scored[j].Task, now)
	})

	return scored, nil
}

// Eligible applies the in-memory part of the eligibility filter. The task
// store already restricts ownership; snooze, backlog and dependency state
// are re-checked here so in-memory sources behave the same.
func Eligible(task *tasksDomain.Task, scopeStart, scopeEnd time.Time) bool {
	if task.IsCompleted() {
		return false
	}
	if snoozed := task.SnoozedUntil(); snoozed != nil && snoozed.After(scopeEnd) {
		return false
	}
	if backlog := task.BacklogDate(); backlog != nil && backlog.After(scopeStart) {
		return false
	}
	return task.DependenciesSatisfied()
}

// Score computes the scheduling score for a task at a point in time.
func Score(task *tasksDomain.Task, now time.Time, optimalDuration int) float64 {
	if optimalDuration <= 0 {
		optimalDuration = DefaultOptimalDuration
	}

	score := task.Priority().Weight()
	score += dueDateUrgency(task.DueDate(), now)

	if task.IsHardDue() {
		score += hardDueBonus
	}
	if task.HasWorkGoal() {
		score += workGoalBonus
	}
	if task.EstimatedDuration() < optimalDuration {
		score += quickWinBonus
	}
	return score
}

func dueDateUrgency(dueDate *time.Time, now time.Time) float64 {
	if dueDate == nil {
		return 0
	}
	hours := dueDate.Sub(now).Hours()
	switch {
	case hours < 0:
		return overdueBonus
	case hours < 24:
		return dueSoonBonus
	case hours < 72:
		return dueNearBonus
	default:
		if v := 50 - hours/24; v > 0 {
			return v
		}
		return 0
	}
}

func hoursUntilDue(task *tasksDomain.Task, now time.Time) float64 {
	if task.DueDate() == nil {
		return noDueDateHours
	}
	return task.DueDate().Sub(now).Hours()
}
