package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

const sqliteReviewColumns = `id, user_id, review_date, tasks_planned, tasks_completed,
	completion_rate, focus_minutes, break_minutes, productivity_score, current_streak,
	summary, mood, highlights, lessons, tomorrow_top, created_at, updated_at`

// SQLiteDailyReviewRepository implements domain.DailyReviewRepository on
// the embedded database. List fields are stored as JSON text.
type SQLiteDailyReviewRepository struct {
	db *sql.DB
}

// NewSQLiteDailyReviewRepository creates a new SQLite daily review
// repository.
func NewSQLiteDailyReviewRepository(db *sql.DB) *SQLiteDailyReviewRepository {
	return &SQLiteDailyReviewRepository{db: db}
}

// Save upserts a review by ID. Inserting a second review for the same
// (user, date) returns domain.ErrReviewExists.
func (r *SQLiteDailyReviewRepository) Save(ctx context.Context, review *domain.DailyReview) error {
	query := `
		INSERT INTO daily_reviews (` + sqliteReviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tasks_planned = excluded.tasks_planned,
			tasks_completed = excluded.tasks_completed,
			completion_rate = excluded.completion_rate,
			focus_minutes = excluded.focus_minutes,
			break_minutes = excluded.break_minutes,
			productivity_score = excluded.productivity_score,
			current_streak = excluded.current_streak,
			summary = excluded.summary,
			mood = excluded.mood,
			highlights = excluded.highlights,
			lessons = excluded.lessons,
			tomorrow_top = excluded.tomorrow_top,
			updated_at = excluded.updated_at
	`
	highlights, err := marshalList(review.Highlights())
	if err != nil {
		return err
	}
	lessons, err := marshalList(review.Lessons())
	if err != nil {
		return err
	}
	tomorrow, err := marshalList(review.TomorrowTop())
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		review.ID().String(), review.UserID().String(), review.Date().UTC(),
		review.TasksPlanned(), review.TasksCompleted(), review.CompletionRate(),
		review.FocusTimeMinutes(), review.BreakTimeMinutes(),
		review.ProductivityScore(), review.CurrentStreak(),
		review.Summary(), review.Mood(), highlights, lessons, tomorrow,
		review.CreatedAt().UTC(), review.UpdatedAt().UTC(),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrReviewExists
	}
	return err
}

// FindByUserAndDate returns the review for a date.
func (r *SQLiteDailyReviewRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyReview, error) {
	query := `
		SELECT ` + sqliteReviewColumns + `
		FROM daily_reviews
		WHERE user_id = ? AND review_date = ?
	`
	return scanSQLiteReview(r.db.QueryRowContext(ctx, query, userID.String(), date.UTC()))
}

// FindLatestBefore returns the most recent review strictly before date.
func (r *SQLiteDailyReviewRepository) FindLatestBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyReview, error) {
	query := `
		SELECT ` + sqliteReviewColumns + `
		FROM daily_reviews
		WHERE user_id = ? AND review_date < ?
		ORDER BY review_date DESC
		LIMIT 1
	`
	return scanSQLiteReview(r.db.QueryRowContext(ctx, query, userID.String(), date.UTC()))
}

// FindByUserSince returns reviews on or after the date, oldest first.
func (r *SQLiteDailyReviewRepository) FindByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.DailyReview, error) {
	query := `
		SELECT ` + sqliteReviewColumns + `
		FROM daily_reviews
		WHERE user_id = ? AND review_date >= ?
		ORDER BY review_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID.String(), since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.DailyReview
	for rows.Next() {
		review, err := scanSQLiteReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// CountByUser returns how many reviews the user has.
func (r *SQLiteDailyReviewRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM daily_reviews WHERE user_id = ?", userID.String()).Scan(&count)
	return count, err
}

func scanSQLiteReview(row sqliteReviewRow) (*domain.DailyReview, error) {
	var (
		rawID, rawUserID              string
		date                          time.Time
		planned, completed            int
		rate                          float64
		focus, brk                    int
		score                         float64
		streak                        int
		summary, mood                 string
		rawHighlights, rawLessons     string
		rawTomorrow                   string
		createdAt, updatedAt          time.Time
	)
	err := row.Scan(
		&rawID, &rawUserID, &date, &planned, &completed, &rate, &focus, &brk, &score, &streak,
		&summary, &mood, &rawHighlights, &rawLessons, &rawTomorrow, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, err
	}
	highlights, err := unmarshalList(rawHighlights)
	if err != nil {
		return nil, err
	}
	lessons, err := unmarshalList(rawLessons)
	if err != nil {
		return nil, err
	}
	tomorrow, err := unmarshalList(rawTomorrow)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateDailyReview(
		id, userID, date, planned, completed, rate, focus, brk, score, streak,
		summary, mood, highlights, lessons, tomorrow, createdAt, updatedAt,
	), nil
}

type sqliteReviewRow interface {
	Scan(dest ...any) error
}

func marshalList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshal review list: %w", err)
	}
	return string(data), nil
}

func unmarshalList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("unmarshal review list: %w", err)
	}
	return values, nil
}
