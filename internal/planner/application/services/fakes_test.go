package services

import (
	"context"
	"time"

	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

type fakeTemplateRepo struct {
	templates []*plannerDomain.AvailabilityTemplate
}

func (r *fakeTemplateRepo) Save(_ context.Context, tmpl *plannerDomain.AvailabilityTemplate) error {
	r.templates = append(r.templates, tmpl)
	return nil
}

func (r *fakeTemplateRepo) FindByOwnerAndWeekday(_ context.Context, owner plannerDomain.Owner, dayOfWeek int) ([]*plannerDomain.AvailabilityTemplate, error) {
	var out []*plannerDomain.AvailabilityTemplate
	for _, tmpl := range r.templates {
		if tmpl.Owner().Equals(owner) && tmpl.DayOfWeek() == dayOfWeek {
			out = append(out, tmpl)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, tmpl := range r.templates {
		if tmpl.ID() == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return plannerDomain.ErrNotFound
}

type fakeEventRepo struct {
	events []*plannerDomain.CalendarEvent
}

func (r *fakeEventRepo) Save(_ context.Context, ev *plannerDomain.CalendarEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *fakeEventRepo) FindBusyOverlapping(_ context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*plannerDomain.CalendarEvent, error) {
	var out []*plannerDomain.CalendarEvent
	for _, ev := range r.events {
		ownedByUser := ev.Owner().UserID() == userID
		ownedByTeam := teamID != uuid.Nil && ev.Owner().TeamID() == teamID
		if !ownedByUser && !ownedByTeam {
			continue
		}
		if ev.IsBusy() && ev.Start().Before(end) && ev.End().After(start) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindByUserAndRange(_ context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*plannerDomain.CalendarEvent, error) {
	var out []*plannerDomain.CalendarEvent
	for _, ev := range r.events {
		ownedByUser := ev.Owner().UserID() == userID
		ownedByTeam := teamID != uuid.Nil && ev.Owner().TeamID() == teamID
		if !ownedByUser && !ownedByTeam {
			continue
		}
		if ev.Start().Before(end) && ev.End().After(start) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policies []*plannerDomain.BreakPolicy
}

func (r *fakePolicyRepo) Save(_ context.Context, policy *plannerDomain.BreakPolicy) error {
	r.policies = append(r.policies, policy)
	return nil
}

func (r *fakePolicyRepo) FindActiveByOwner(_ context.Context, owner plannerDomain.Owner) (*plannerDomain.BreakPolicy, error) {
	for _, p := range r.policies {
		if p.Owner().Equals(owner) && p.IsActive() {
			return p, nil
		}
	}
	return nil, plannerDomain.ErrNotFound
}

type fakeTeamResolver struct {
	teams map[uuid.UUID]uuid.UUID
}

func (r *fakeTeamResolver) TeamFor(_ context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	teamID, ok := r.teams[userID]
	return teamID, ok, nil
}

type fakeTaskSource struct {
	tasks    []*tasksDomain.Task
	startAts map[uuid.UUID]time.Time
}

func (s *fakeTaskSource) FindCandidates(_ context.Context, filter tasksDomain.CandidateFilter) ([]*tasksDomain.Task, error) {
	var out []*tasksDomain.Task
	for _, task := range s.tasks {
		if task.IsCompleted() {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (s *fakeTaskSource) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*tasksDomain.Task, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*tasksDomain.Task
	for _, task := range s.tasks {
		if wanted[task.ID()] {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *fakeTaskSource) FindCompletedBetween(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*tasksDomain.Task, error) {
	var out []*tasksDomain.Task
	for _, task := range s.tasks {
		if task.IsCompleted() && task.CompletedAt() != nil &&
			!task.CompletedAt().Before(start) && task.CompletedAt().Before(end) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *fakeTaskSource) FindByWorkGoal(_ context.Context, workGoalID uuid.UUID) ([]*tasksDomain.Task, error) {
	var out []*tasksDomain.Task
	for _, task := range s.tasks {
		if task.WorkGoalID() == workGoalID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *fakeTaskSource) UpdateStartAt(_ context.Context, taskID uuid.UUID, startAt time.Time) error {
	if s.startAts == nil {
		s.startAts = make(map[uuid.UUID]time.Time)
	}
	s.startAts[taskID] = startAt
	return nil
}

type fakeInsightProvider struct {
	params SchedulingParams
}

func (p *fakeInsightProvider) SchedulingParams(_ context.Context, _ uuid.UUID) (SchedulingParams, error) {
	return p.params, nil
}
