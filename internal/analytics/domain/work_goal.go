package domain

import (
	"errors"
	"strings"
	"time"

	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrEmptyGoalName = errors.New("work goal name cannot be empty")

// WorkGoal groups tasks under a named objective. Progress is recomputed
// on demand from the linked tasks, never stored authoritatively.
type WorkGoal struct {
	sharedDomain.BaseEntity
	owner              plannerDomain.Owner
	name               string
	projectID          uuid.UUID // uuid.Nil when not linked to a project
	tags               []string
	progressPercentage float64
	totalTasks         int
	completedTasks     int
}

// NewWorkGoal creates a work goal.
func NewWorkGoal(owner plannerDomain.Owner, name string, projectID uuid.UUID, tags []string) (*WorkGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGoalName
	}
	return &WorkGoal{
		BaseEntity: sharedDomain.NewBaseEntity(),
		owner:      owner,
		name:       name,
		projectID:  projectID,
		tags:       tags,
	}, nil
}

// Getters
func (wg *WorkGoal) Owner() plannerDomain.Owner   { return wg.owner }
func (wg *WorkGoal) Name() string                 { return wg.name }
func (wg *WorkGoal) ProjectID() uuid.UUID         { return wg.projectID }
func (wg *WorkGoal) Tags() []string               { return wg.tags }
func (wg *WorkGoal) ProgressPercentage() float64  { return wg.progressPercentage }
func (wg *WorkGoal) TotalTasks() int              { return wg.totalTasks }
func (wg *WorkGoal) CompletedTasks() int          { return wg.completedTasks }

// RecomputeProgress updates the cached counters from the linked tasks.
func (wg *WorkGoal) RecomputeProgress(totalTasks, completedTasks int) {
	wg.totalTasks = totalTasks
	wg.completedTasks = completedTasks
	wg.progressPercentage = 0
	if totalTasks > 0 {
		wg.progressPercentage = float64(completedTasks) / float64(totalTasks) * 100
	}
	wg.Touch()
}

// Rename changes the goal's name.
func (wg *WorkGoal) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyGoalName
	}
	wg.name = name
	wg.Touch()
	return nil
}

// Tag adds a tag if not already present.
func (wg *WorkGoal) Tag(tag string) {
	for _, t := range wg.tags {
		if t == tag {
			return
		}
	}
	wg.tags = append(wg.tags, tag)
	wg.Touch()
}

// RehydrateWorkGoal recreates a work goal from persisted state.
func RehydrateWorkGoal(
	id uuid.UUID,
	owner plannerDomain.Owner,
	name string,
	projectID uuid.UUID,
	tags []string,
	progressPercentage float64,
	totalTasks, completedTasks int,
	createdAt, updatedAt time.Time,
) *WorkGoal {
	return &WorkGoal{
		BaseEntity:         sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		owner:              owner,
		name:               name,
		projectID:          projectID,
		tags:               tags,
		progressPercentage: progressPercentage,
		totalTasks:         totalTasks,
		completedTasks:     completedTasks,
	}
}
