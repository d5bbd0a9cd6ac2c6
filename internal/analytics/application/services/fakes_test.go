package services

import (
	"context"
	"sort"
	"time"

	analyticsDomain "github.com/felixgeelhaar/tempo/internal/analytics/domain"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

type fakeReviewRepo struct {
	reviews []*analyticsDomain.DailyReview
}

func (r *fakeReviewRepo) Save(_ context.Context, review *analyticsDomain.DailyReview) error {
	for i, existing := range r.reviews {
		if existing.ID() == review.ID() {
			r.reviews[i] = review
			return nil
		}
		if existing.UserID() == review.UserID() && existing.Date().Equal(review.Date()) {
			return analyticsDomain.ErrReviewExists
		}
	}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*analyticsDomain.DailyReview, error) {
	for _, review := range r.reviews {
		if review.UserID() == userID && review.Date().Equal(date) {
			return review, nil
		}
	}
	return nil, analyticsDomain.ErrNotFound
}

func (r *fakeReviewRepo) FindLatestBefore(_ context.Context, userID uuid.UUID, date time.Time) (*analyticsDomain.DailyReview, error) {
	var latest *analyticsDomain.DailyReview
	for _, review := range r.reviews {
		if review.UserID() == userID && review.Date().Before(date) {
			if latest == nil || review.Date().After(latest.Date()) {
				latest = review
			}
		}
	}
	if latest == nil {
		return nil, analyticsDomain.ErrNotFound
	}
	return latest, nil
}

func (r *fakeReviewRepo) FindByUserSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*analyticsDomain.DailyReview, error) {
	var out []*analyticsDomain.DailyReview
	for _, review := range r.reviews {
		if review.UserID() == userID && !review.Date().Before(since) {
			out = append(out, review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().Before(out[j].Date()) })
	return out, nil
}

func (r *fakeReviewRepo) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, review := range r.reviews {
		if review.UserID() == userID {
			count++
		}
	}
	return count, nil
}

type fakeInsightRepo struct {
	insights map[string]*analyticsDomain.ProductivityInsight
}

func insightKey(userID uuid.UUID, t analyticsDomain.InsightType) string {
	return userID.String() + "/" + string(t)
}

func (r *fakeInsightRepo) Upsert(_ context.Context, insight *analyticsDomain.ProductivityInsight) error {
	if r.insights == nil {
		r.insights = make(map[string]*analyticsDomain.ProductivityInsight)
	}
	r.insights[insightKey(insight.UserID(), insight.Type())] = insight
	return nil
}

func (r *fakeInsightRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*analyticsDomain.ProductivityInsight, error) {
	var out []*analyticsDomain.ProductivityInsight
	for _, insight := range r.insights {
		if insight.UserID() == userID && insight.IsActive() {
			out = append(out, insight)
		}
	}
	return out, nil
}

func (r *fakeInsightRepo) FindByUserAndType(_ context.Context, userID uuid.UUID, t analyticsDomain.InsightType) (*analyticsDomain.ProductivityInsight, error) {
	if insight, ok := r.insights[insightKey(userID, t)]; ok {
		return insight, nil
	}
	return nil, analyticsDomain.ErrNotFound
}

func (r *fakeInsightRepo) PurgeExpired(_ context.Context, cutoff time.Time) (int, error) {
	purged := 0
	for key, insight := range r.insights {
		if insight.ValidUntil().Before(cutoff) {
			delete(r.insights, key)
			purged++
		}
	}
	return purged, nil
}

type fakeBlockRepo struct {
	blocks []*plannerDomain.TimeBlock
}

func (r *fakeBlockRepo) SaveAll(_ context.Context, blocks []*plannerDomain.TimeBlock) error {
	r.blocks = append(r.blocks, blocks...)
	return nil
}

func (r *fakeBlockRepo) FindByID(_ context.Context, id uuid.UUID) (*plannerDomain.TimeBlock, error) {
	for _, b := range r.blocks {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, plannerDomain.ErrNotFound
}

func (r *fakeBlockRepo) FindByUserAndRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*plannerDomain.TimeBlock, error) {
	var out []*plannerDomain.TimeBlock
	for _, b := range r.blocks {
		if b.Owner().UserID() == userID && b.Start().Before(end) && b.End().After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) FindByStatusInRange(_ context.Context, userID uuid.UUID, status plannerDomain.BlockStatus, start, end time.Time) ([]*plannerDomain.TimeBlock, error) {
	var out []*plannerDomain.TimeBlock
	for _, b := range r.blocks {
		if b.Owner().UserID() == userID && b.Status() == status && b.Start().Before(end) && b.End().After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) Update(_ context.Context, _ *plannerDomain.TimeBlock) error { return nil }

func (r *fakeBlockRepo) DeletePlannedAfter(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ time.Time) (int, error) {
	return 0, nil
}

type fakeTaskSource struct {
	tasks []*tasksDomain.Task
}

func (s *fakeTaskSource) FindCandidates(_ context.Context, _ tasksDomain.CandidateFilter) ([]*tasksDomain.Task, error) {
	return nil, nil
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

func (s *fakeTaskSource) UpdateStartAt(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}
