package queries

import (
	"context"
	"sort"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

type fakeReviewRepo struct {
	reviews []*domain.DailyReview
}

func (r *fakeReviewRepo) Save(_ context.Context, review *domain.DailyReview) error {
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*domain.DailyReview, error) {
	for _, review := range r.reviews {
		if review.UserID() == userID && review.Date().Equal(date) {
			return review, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeReviewRepo) FindLatestBefore(_ context.Context, userID uuid.UUID, date time.Time) (*domain.DailyReview, error) {
	var latest *domain.DailyReview
	for _, review := range r.reviews {
		if review.UserID() == userID && review.Date().Before(date) {
			if latest == nil || review.Date().After(latest.Date()) {
				latest = review
			}
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (r *fakeReviewRepo) FindByUserSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*domain.DailyReview, error) {
	var out []*domain.DailyReview
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
