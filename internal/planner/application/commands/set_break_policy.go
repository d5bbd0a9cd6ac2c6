package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
)

// SetBreakPolicyCommand replaces the owner's active break policy.
type SetBreakPolicyCommand struct {
	Owner            domain.Owner
	FocusMinutes     int
	BreakMinutes     int
	LongBreakMinutes int
	CycleCount       int
}

// SetBreakPolicyHandler handles the SetBreakPolicyCommand.
type SetBreakPolicyHandler struct {
	policies domain.BreakPolicyRepository
}

// NewSetBreakPolicyHandler creates a new SetBreakPolicyHandler.
func NewSetBreakPolicyHandler(policies domain.BreakPolicyRepository) *SetBreakPolicyHandler {
	return &SetBreakPolicyHandler{policies: policies}
}

// Handle executes the SetBreakPolicyCommand. An existing active policy is
// updated in place so the owner keeps a single active policy.
func (h *SetBreakPolicyHandler) Handle(ctx context.Context, cmd SetBreakPolicyCommand) (*domain.BreakPolicy, error) {
	existing, err := h.policies.FindActiveByOwner(ctx, cmd.Owner)
	if err == nil {
		if err := existing.UpdateMinutes(cmd.FocusMinutes, cmd.BreakMinutes, cmd.LongBreakMinutes, cmd.CycleCount); err != nil {
			return nil, err
		}
		if err := h.policies.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	policy, err := domain.NewBreakPolicy(cmd.Owner, cmd.FocusMinutes, cmd.BreakMinutes, cmd.LongBreakMinutes, cmd.CycleCount)
	if err != nil {
		return nil, err
	}
	if err := h.policies.Save(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}
