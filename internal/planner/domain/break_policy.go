package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrInvalidBreakPolicy = errors.New("break policy minutes must be positive")

// Default break policy values applied when an owner has none configured.
const (
	DefaultFocusMinutes     = 25
	DefaultBreakMinutes     = 5
	DefaultLongBreakMinutes = 15
	DefaultCycleCount       = 4
)

// BreakPolicy declares how focus time is interleaved with breaks.
// After cycleCount focus blocks, the next break is a long break.
type BreakPolicy struct {
	sharedDomain.BaseEntity
	owner            Owner
	focusMinutes     int
	breakMinutes     int
	longBreakMinutes int
	cycleCount       int
	active           bool
}

// NewBreakPolicy creates an active break policy for an owner.
func NewBreakPolicy(owner Owner, focusMinutes, breakMinutes, longBreakMinutes, cycleCount int) (*BreakPolicy, error) {
	if focusMinutes <= 0 || breakMinutes <= 0 || longBreakMinutes <= 0 || cycleCount <= 0 {
		return nil, ErrInvalidBreakPolicy
	}
	return &BreakPolicy{
		BaseEntity:       sharedDomain.NewBaseEntity(),
		owner:            owner,
		focusMinutes:     focusMinutes,
		breakMinutes:     breakMinutes,
		longBreakMinutes: longBreakMinutes,
		cycleCount:       cycleCount,
		active:           true,
	}, nil
}

// DefaultBreakPolicy returns the fallback policy used when an owner has
// no active policy configured.
func DefaultBreakPolicy(owner Owner) *BreakPolicy {
	return &BreakPolicy{
		BaseEntity:       sharedDomain.NewBaseEntity(),
		owner:            owner,
		focusMinutes:     DefaultFocusMinutes,
		breakMinutes:     DefaultBreakMinutes,
		longBreakMinutes: DefaultLongBreakMinutes,
		cycleCount:       DefaultCycleCount,
		active:           true,
	}
}

// Getters
func (bp *BreakPolicy) Owner() Owner          { return bp.owner }
func (bp *BreakPolicy) FocusMinutes() int     { return bp.focusMinutes }
func (bp *BreakPolicy) BreakMinutes() int     { return bp.breakMinutes }
func (bp *BreakPolicy) LongBreakMinutes() int { return bp.longBreakMinutes }
func (bp *BreakPolicy) CycleCount() int       { return bp.cycleCount }
func (bp *BreakPolicy) IsActive() bool        { return bp.active }

// Deactivate retires the policy without deleting it.
func (bp *BreakPolicy) Deactivate() {
	bp.active = false
	bp.Touch()
}

// Activate re-enables the policy.
func (bp *BreakPolicy) Activate() {
	bp.active = true
	bp.Touch()
}

// UpdateMinutes changes the policy's timing parameters.
func (bp *BreakPolicy) UpdateMinutes(focusMinutes, breakMinutes, longBreakMinutes, cycleCount int) error {
	if focusMinutes <= 0 || breakMinutes <= 0 || longBreakMinutes <= 0 || cycleCount <= 0 {
		return ErrInvalidBreakPolicy
	}
	bp.focusMinutes = focusMinutes
	bp.breakMinutes = breakMinutes
	bp.longBreakMinutes = longBreakMinutes
	bp.cycleCount = cycleCount
	bp.Touch()
	return nil
}

// RehydrateBreakPolicy recreates a break policy from persisted state.
func RehydrateBreakPolicy(
	id uuid.UUID,
	owner Owner,
	focusMinutes, breakMinutes, longBreakMinutes, cycleCount int,
	active bool,
	createdAt, updatedAt time.Time,
) *BreakPolicy {
	return &BreakPolicy{
		BaseEntity:       sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		owner:            owner,
		focusMinutes:     focusMinutes,
		breakMinutes:     breakMinutes,
		longBreakMinutes: longBreakMinutes,
		cycleCount:       cycleCount,
		active:           active,
	}
}
