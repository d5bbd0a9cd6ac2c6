// Package persistence provides PostgreSQL implementations for analytics
// repositories.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const dailyReviewColumns = `id, user_id, review_date, tasks_planned, tasks_completed,
	completion_rate, focus_minutes, break_minutes, productivity_score, current_streak,
	summary, mood, highlights, lessons, tomorrow_top, created_at, updated_at`

// PostgresDailyReviewRepository implements domain.DailyReviewRepository
// using PostgreSQL.
type PostgresDailyReviewRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDailyReviewRepository creates a new PostgreSQL daily review
// repository.
func NewPostgresDailyReviewRepository(pool *pgxpool.Pool) *PostgresDailyReviewRepository {
	return &PostgresDailyReviewRepository{pool: pool}
}

// Save upserts a review by ID. Inserting a second review for the same
// (user, date) returns domain.ErrReviewExists.
func (r *PostgresDailyReviewRepository) Save(ctx context.Context, review *domain.DailyReview) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO daily_reviews (` + dailyReviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			tasks_planned = EXCLUDED.tasks_planned,
			tasks_completed = EXCLUDED.tasks_completed,
			completion_rate = EXCLUDED.completion_rate,
			focus_minutes = EXCLUDED.focus_minutes,
			break_minutes = EXCLUDED.break_minutes,
			productivity_score = EXCLUDED.productivity_score,
			current_streak = EXCLUDED.current_streak,
			summary = EXCLUDED.summary,
			mood = EXCLUDED.mood,
			highlights = EXCLUDED.highlights,
			lessons = EXCLUDED.lessons,
			tomorrow_top = EXCLUDED.tomorrow_top,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		review.ID(), review.UserID(), review.Date(),
		review.TasksPlanned(), review.TasksCompleted(), review.CompletionRate(),
		review.FocusTimeMinutes(), review.BreakTimeMinutes(),
		review.ProductivityScore(), review.CurrentStreak(),
		review.Summary(), review.Mood(),
		pq.Array(review.Highlights()), pq.Array(review.Lessons()), pq.Array(review.TomorrowTop()),
		review.CreatedAt(), review.UpdatedAt(),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrReviewExists
	}
	return err
}

// FindByUserAndDate returns the review for a date.
func (r *PostgresDailyReviewRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyReview, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + dailyReviewColumns + `
		FROM daily_reviews
		WHERE user_id = $1 AND review_date = $2
	`
	return scanDailyReview(exec.QueryRow(ctx, query, userID, date))
}

// FindLatestBefore returns the most recent review strictly before date.
func (r *PostgresDailyReviewRepository) FindLatestBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyReview, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + dailyReviewColumns + `
		FROM daily_reviews
		WHERE user_id = $1 AND review_date < $2
		ORDER BY review_date DESC
		LIMIT 1
	`
	return scanDailyReview(exec.QueryRow(ctx, query, userID, date))
}

// FindByUserSince returns reviews on or after the date, oldest first.
func (r *PostgresDailyReviewRepository) FindByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.DailyReview, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + dailyReviewColumns + `
		FROM daily_reviews
		WHERE user_id = $1 AND review_date >= $2
		ORDER BY review_date
	`
	rows, err := exec.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.DailyReview
	for rows.Next() {
		review, err := scanDailyReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// CountByUser returns how many reviews the user has.
func (r *PostgresDailyReviewRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	var count int
	err := exec.QueryRow(ctx, "SELECT COUNT(*) FROM daily_reviews WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

func scanDailyReview(row pgx.Row) (*domain.DailyReview, error) {
	var (
		id, userID                     uuid.UUID
		date                           time.Time
		planned, completed             int
		rate                           float64
		focus, brk                     int
		score                          float64
		streak                         int
		summary, mood                  string
		highlights, lessons, tomorrow  []string
		createdAt, updatedAt           time.Time
	)
	err := row.Scan(
		&id, &userID, &date, &planned, &completed, &rate, &focus, &brk, &score, &streak,
		&summary, &mood, pq.Array(&highlights), pq.Array(&lessons), pq.Array(&tomorrow),
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return domain.RehydrateDailyReview(
		id, userID, date, planned, completed, rate, focus, brk, score, streak,
		summary, mood, highlights, lessons, tomorrow, createdAt, updatedAt,
	), nil
}
