package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPolicyRepo struct {
	active *domain.BreakPolicy
	saved  []*domain.BreakPolicy
}

func (r *recordingPolicyRepo) Save(_ context.Context, policy *domain.BreakPolicy) error {
	r.saved = append(r.saved, policy)
	return nil
}

func (r *recordingPolicyRepo) FindActiveByOwner(_ context.Context, owner domain.Owner) (*domain.BreakPolicy, error) {
	if r.active != nil && r.active.Owner().Equals(owner) {
		return r.active, nil
	}
	return nil, domain.ErrNotFound
}

func TestSetBreakPolicy_CreatesWhenNoneActive(t *testing.T) {
	repo := &recordingPolicyRepo{}
	handler := NewSetBreakPolicyHandler(repo)
	owner := domain.UserOwner(uuid.New())

	policy, err := handler.Handle(context.Background(), SetBreakPolicyCommand{
		Owner:            owner,
		FocusMinutes:     50,
		BreakMinutes:     10,
		LongBreakMinutes: 30,
		CycleCount:       3,
	})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, 50, policy.FocusMinutes())
	assert.Equal(t, 10, policy.BreakMinutes())
	assert.Equal(t, 30, policy.LongBreakMinutes())
	assert.Equal(t, 3, policy.CycleCount())
	assert.True(t, policy.IsActive())
}

func TestSetBreakPolicy_UpdatesExistingActive(t *testing.T) {
	owner := domain.UserOwner(uuid.New())
	existing, err := domain.NewBreakPolicy(owner, 25, 5, 15, 4)
	require.NoError(t, err)

	repo := &recordingPolicyRepo{active: existing}
	handler := NewSetBreakPolicyHandler(repo)

	policy, err := handler.Handle(context.Background(), SetBreakPolicyCommand{
		Owner:            owner,
		FocusMinutes:     50,
		BreakMinutes:     10,
		LongBreakMinutes: 30,
		CycleCount:       3,
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID(), policy.ID())
	assert.Equal(t, 50, policy.FocusMinutes())
	require.Len(t, repo.saved, 1)
	assert.Equal(t, existing.ID(), repo.saved[0].ID())
}

func TestSetBreakPolicy_RejectsInvalidMinutes(t *testing.T) {
	handler := NewSetBreakPolicyHandler(&recordingPolicyRepo{})

	_, err := handler.Handle(context.Background(), SetBreakPolicyCommand{
		Owner:            domain.UserOwner(uuid.New()),
		FocusMinutes:     0,
		BreakMinutes:     5,
		LongBreakMinutes: 15,
		CycleCount:       4,
	})
	assert.Error(t, err)
}
