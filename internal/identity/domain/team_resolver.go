// Package domain exposes the minimal identity capability the engine
// needs: resolving which team, if any, a user belongs to.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// TeamResolver resolves a user's team membership.
type TeamResolver interface {
	// TeamFor returns the user's team ID. The second return is false
	// when the user belongs to no team.
	TeamFor(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
}

// StaticTeamResolver is a fixed in-memory resolver, useful for local mode
// and tests.
type StaticTeamResolver struct {
	teams map[uuid.UUID]uuid.UUID
}

// NewStaticTeamResolver builds a resolver from a fixed user-to-team map.
func NewStaticTeamResolver(teams map[uuid.UUID]uuid.UUID) *StaticTeamResolver {
	if teams == nil {
		teams = make(map[uuid.UUID]uuid.UUID)
	}
	return &StaticTeamResolver{teams: teams}
}

// TeamFor implements TeamResolver.
func (r *StaticTeamResolver) TeamFor(_ context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	teamID, ok := r.teams[userID]
	return teamID, ok, nil
}
