package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insightColumns = `id, user_id, insight_type, data, confidence_score, sample_size,
	valid_from, valid_until, active, created_at, updated_at`

// PostgresInsightRepository implements domain.ProductivityInsightRepository
// using PostgreSQL. Insight payloads live in a JSONB column.
type PostgresInsightRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInsightRepository creates a new PostgreSQL insight repository.
func NewPostgresInsightRepository(pool *pgxpool.Pool) *PostgresInsightRepository {
	return &PostgresInsightRepository{pool: pool}
}

// Upsert creates or replaces the insight for its (user, type) key.
func (r *PostgresInsightRepository) Upsert(ctx context.Context, insight *domain.ProductivityInsight) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO productivity_insights (` + insightColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, insight_type) DO UPDATE SET
			data = EXCLUDED.data,
			confidence_score = EXCLUDED.confidence_score,
			sample_size = EXCLUDED.sample_size,
			valid_from = EXCLUDED.valid_from,
			valid_until = EXCLUDED.valid_until,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`
	data, err := json.Marshal(insight.Data())
	if err != nil {
		return fmt.Errorf("marshal insight data: %w", err)
	}

	_, err = exec.Exec(ctx, query,
		insight.ID(), insight.UserID(), string(insight.Type()), data,
		insight.ConfidenceScore(), insight.SampleSize(),
		insight.ValidFrom(), insight.ValidUntil(), insight.IsActive(),
		insight.CreatedAt(), insight.UpdatedAt(),
	)
	return err
}

// FindActiveByUser returns the user's active insights.
func (r *PostgresInsightRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ProductivityInsight, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + insightColumns + `
		FROM productivity_insights
		WHERE user_id = $1 AND active
		ORDER BY insight_type
	`
	rows, err := exec.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []*domain.ProductivityInsight
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, rows.Err()
}

// FindByUserAndType returns one insight.
func (r *PostgresInsightRepository) FindByUserAndType(ctx context.Context, userID uuid.UUID, insightType domain.InsightType) (*domain.ProductivityInsight, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + insightColumns + `
		FROM productivity_insights
		WHERE user_id = $1 AND insight_type = $2
	`
	return scanInsight(exec.QueryRow(ctx, query, userID, string(insightType)))
}

// PurgeExpired removes insights whose validity ended before the cutoff.
func (r *PostgresInsightRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, "DELETE FROM productivity_insights WHERE valid_until < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanInsight(row pgx.Row) (*domain.ProductivityInsight, error) {
	var (
		id, userID           uuid.UUID
		insightType          string
		rawData              []byte
		confidence           float64
		sampleSize           int
		validFrom, validTo   time.Time
		active               bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &userID, &insightType, &rawData, &confidence, &sampleSize,
		&validFrom, &validTo, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(rawData, &data); err != nil {
		return nil, fmt.Errorf("unmarshal insight data: %w", err)
	}

	return domain.RehydrateProductivityInsight(
		id, userID, domain.InsightType(insightType), data,
		confidence, sampleSize, validFrom, validTo, active, createdAt, updatedAt,
	), nil
}
