// Package persistence resolves team membership from PostgreSQL.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTeamResolver implements domain.TeamResolver over the team
// membership table. A user on several teams resolves to the one joined
// first.
type PostgresTeamResolver struct {
	pool *pgxpool.Pool
}

// NewPostgresTeamResolver creates a new PostgreSQL team resolver.
func NewPostgresTeamResolver(pool *pgxpool.Pool) *PostgresTeamResolver {
	return &PostgresTeamResolver{pool: pool}
}

// TeamFor returns the user's team ID, false when the user has none.
func (r *PostgresTeamResolver) TeamFor(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	query := `
		SELECT team_id
		FROM team_members
		WHERE user_id = $1
		ORDER BY joined_at
		LIMIT 1
	`
	var teamID uuid.UUID
	err := r.pool.QueryRow(ctx, query, userID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return teamID, true, nil
}
