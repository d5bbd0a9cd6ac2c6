package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/application/services"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

type fakeBlockRepo struct {
	blocks  []*domain.TimeBlock
	saveErr error
}

func (r *fakeBlockRepo) SaveAll(_ context.Context, blocks []*domain.TimeBlock) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.blocks = append(r.blocks, blocks...)
	return nil
}

func (r *fakeBlockRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.TimeBlock, error) {
	for _, b := range r.blocks {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeBlockRepo) FindByUserAndRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.TimeBlock, error) {
	var out []*domain.TimeBlock
	for _, b := range r.blocks {
		if b.Owner().UserID() == userID && b.Start().Before(end) && b.End().After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) FindByStatusInRange(_ context.Context, userID uuid.UUID, status domain.BlockStatus, start, end time.Time) ([]*domain.TimeBlock, error) {
	var out []*domain.TimeBlock
	for _, b := range r.blocks {
		if b.Owner().UserID() == userID && b.Status() == status && b.Start().Before(end) && b.End().After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) Update(_ context.Context, _ *domain.TimeBlock) error {
	return nil
}

func (r *fakeBlockRepo) DeletePlannedAfter(_ context.Context, userID uuid.UUID, taskIDs []uuid.UUID, after time.Time) (int, error) {
	affected := make(map[uuid.UUID]bool, len(taskIDs))
	for _, id := range taskIDs {
		affected[id] = true
	}
	var kept []*domain.TimeBlock
	deleted := 0
	for _, b := range r.blocks {
		if b.Owner().UserID() == userID && b.Status() == domain.BlockStatusPlanned &&
			affected[b.TaskID()] && !b.Start().Before(after) {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	r.blocks = kept
	return deleted, nil
}

type fakePolicyRepo struct{}

func (r *fakePolicyRepo) Save(_ context.Context, _ *domain.BreakPolicy) error { return nil }

func (r *fakePolicyRepo) FindActiveByOwner(_ context.Context, _ domain.Owner) (*domain.BreakPolicy, error) {
	return nil, domain.ErrNotFound
}

type fakeTemplateRepo struct{}

func (r *fakeTemplateRepo) Save(_ context.Context, _ *domain.AvailabilityTemplate) error { return nil }

func (r *fakeTemplateRepo) FindByOwnerAndWeekday(_ context.Context, _ domain.Owner, _ int) ([]*domain.AvailabilityTemplate, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeEventRepo struct{}

func (r *fakeEventRepo) Save(_ context.Context, _ *domain.CalendarEvent) error { return nil }

func (r *fakeEventRepo) FindBusyOverlapping(_ context.Context, _, _ uuid.UUID, _, _ time.Time) ([]*domain.CalendarEvent, error) {
	return nil, nil
}

func (r *fakeEventRepo) FindByUserAndRange(_ context.Context, _, _ uuid.UUID, _, _ time.Time) ([]*domain.CalendarEvent, error) {
	return nil, nil
}

type fakeTeamResolver struct{}

func (r *fakeTeamResolver) TeamFor(_ context.Context, _ uuid.UUID) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

type fakeTaskSource struct {
	tasks    []*tasksDomain.Task
	startAts map[uuid.UUID]time.Time
}

func (s *fakeTaskSource) FindCandidates(_ context.Context, _ tasksDomain.CandidateFilter) ([]*tasksDomain.Task, error) {
	var out []*tasksDomain.Task
	for _, task := range s.tasks {
		if !task.IsCompleted() {
			out = append(out, task)
		}
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

func (s *fakeTaskSource) FindCompletedBetween(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*tasksDomain.Task, error) {
	return nil, nil
}

func (s *fakeTaskSource) FindByWorkGoal(_ context.Context, _ uuid.UUID) ([]*tasksDomain.Task, error) {
	return nil, nil
}

func (s *fakeTaskSource) UpdateStartAt(_ context.Context, taskID uuid.UUID, startAt time.Time) error {
	if s.startAts == nil {
		s.startAts = make(map[uuid.UUID]time.Time)
	}
	s.startAts[taskID] = startAt
	return nil
}

type fakeUnitOfWork struct {
	begun      int
	committed  int
	rolledBack int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.begun++
	return ctx, nil
}

func (u *fakeUnitOfWork) Commit(_ context.Context) error {
	u.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback(_ context.Context) error {
	u.rolledBack++
	return nil
}

type capturePublisher struct {
	routingKeys []string
	payloads    [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

var errSaveFailed = errors.New("save failed")

func newScheduler(source tasksDomain.Source) *services.Scheduler {
	resolver := services.NewAvailabilityResolver(&fakeTemplateRepo{}, &fakeEventRepo{}, &fakeTeamResolver{}, time.UTC)
	return services.NewScheduler(
		resolver,
		services.NewPrioritizer(source),
		services.NewPacker(),
		&fakePolicyRepo{},
		nil,
		cache.NewMemoryCache(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}
