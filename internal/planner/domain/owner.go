package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidOwner = errors.New("exactly one of user or team must own the entity")

// Owner identifies who an entity belongs to. Exactly one of the two
// references is set.
type Owner struct {
	userID uuid.UUID
	teamID uuid.UUID
}

// UserOwner creates an owner backed by a single user.
func UserOwner(userID uuid.UUID) Owner {
	return Owner{userID: userID}
}

// TeamOwner creates an owner backed by a team.
func TeamOwner(teamID uuid.UUID) Owner {
	return Owner{teamID: teamID}
}

// NewOwner validates that exactly one reference is set.
func NewOwner(userID, teamID uuid.UUID) (Owner, error) {
	if (userID == uuid.Nil) == (teamID == uuid.Nil) {
		return Owner{}, ErrInvalidOwner
	}
	return Owner{userID: userID, teamID: teamID}, nil
}

func (o Owner) UserID() uuid.UUID { return o.userID }
func (o Owner) TeamID() uuid.UUID { return o.teamID }

// IsUser reports whether the owner is an individual user.
func (o Owner) IsUser() bool { return o.userID != uuid.Nil }

// IsTeam reports whether the owner is a team.
func (o Owner) IsTeam() bool { return o.teamID != uuid.Nil }

// Equals compares two owners by reference.
func (o Owner) Equals(other Owner) bool {
	return o.userID == other.userID && o.teamID == other.teamID
}
