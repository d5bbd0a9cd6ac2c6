package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/cache"
	"github.com/google/uuid"
)

var ErrInvalidScope = errors.New("scope must be day or week")

// PreviewCacheTTL is how long a computed schedule preview stays cached.
const PreviewCacheTTL = 5 * time.Minute

// Scope is the planning horizon of a scheduling request.
type Scope string

const (
	ScopeDay  Scope = "day"
	ScopeWeek Scope = "week"
)

// ParseScope parses a scope from its string form.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeDay:
		return ScopeDay, nil
	case ScopeWeek:
		return ScopeWeek, nil
	default:
		return "", ErrInvalidScope
	}
}

// PlannedBlock is one block of a schedule preview.
type PlannedBlock struct {
	TaskID  uuid.UUID `json:"task_id,omitempty"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	IsBreak bool      `json:"is_break"`
}

// ScheduleResult is the outcome of a preview run, cacheable as a value.
type ScheduleResult struct {
	UserID         uuid.UUID      `json:"user_id"`
	Scope          Scope          `json:"scope"`
	Date           time.Time      `json:"date"`
	Blocks         []PlannedBlock `json:"blocks"`
	WindowMinutes  int            `json:"window_minutes"`
	PlannedMinutes int            `json:"planned_minutes"`
	CapacityUsage  float64        `json:"capacity_usage"`
	FromCache      bool           `json:"-"`
}

// SchedulingParams are the insight-derived knobs that tune a run. Zero
// values mean "no learned data, use defaults".
type SchedulingParams struct {
	PeakHours       []int
	OptimalDuration int
}

// InsightProvider supplies learned scheduling parameters for a user.
type InsightProvider interface {
	SchedulingParams(ctx context.Context, userID uuid.UUID) (SchedulingParams, error)
}

// Scheduler orchestrates availability resolution, prioritization and
// packing for a day or week, with value caching per (user, scope, date).
type Scheduler struct {
	availability *AvailabilityResolver
	prioritizer  *Prioritizer
	packer       *Packer
	policies     domain.BreakPolicyRepository
	insights     InsightProvider
	cache        cache.Cache
	logger       *slog.Logger
}

// NewScheduler creates the scheduling facade.
func NewScheduler(
	availability *AvailabilityResolver,
	prioritizer *Prioritizer,
	packer *Packer,
	policies domain.BreakPolicyRepository,
	insights InsightProvider,
	cacheStore cache.Cache,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		availability: availability,
		prioritizer:  prioritizer,
		packer:       packer,
		policies:     policies,
		insights:     insights,
		cache:        cacheStore,
		logger:       logger,
	}
}

// Preview computes (or returns the cached) schedule for the scope
// starting at date. Empty availability or an empty task list yields an
// empty schedule, not an error.
func (s *Scheduler) Preview(ctx context.Context, userID uuid.UUID, scope Scope, date time.Time) (*ScheduleResult, error) {
	key := previewCacheKey(userID, scope, date)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached ScheduleResult
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.FromCache = true
			return &cached, nil
		}
		s.logger.Warn("discarding undecodable cached schedule", "key", key)
	}

	result, err := s.generate(ctx, userID, scope, date)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, data, PreviewCacheTTL); err != nil {
			s.logger.Warn("failed to cache schedule preview",
				"user_id", userID, "scope", scope, "error", err)
		}
	}
	return result, nil
}

// Generate computes a schedule without consulting or populating the
// cache. Replan uses this to avoid serving stale previews.
func (s *Scheduler) Generate(ctx context.Context, userID uuid.UUID, scope Scope, date time.Time) (*ScheduleResult, error) {
	return s.generate(ctx, userID, scope, date)
}

func (s *Scheduler) generate(ctx context.Context, userID uuid.UUID, scope Scope, date time.Time) (*ScheduleResult, error) {
	start := time.Now()

	params := SchedulingParams{}
	if s.insights != nil {
		p, err := s.insights.SchedulingParams(ctx, userID)
		if err != nil {
			s.logger.Warn("scheduling without insights",
				"user_id", userID, "error", err)
		} else {
			params = p
		}
	}

	scopeStart, scopeEnd, err := scopeBounds(scope, date)
	if err != nil {
		return nil, err
	}

	windows, err := s.availability.ResolveRange(ctx, userID, scopeStart, scopeEnd)
	if err != nil {
		return nil, fmt.Errorf("resolve availability: %w", err)
	}
	windows = reorderByPeakHours(windows, params.PeakHours)

	teamID, _, err := s.availability.teams.TeamFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve team: %w", err)
	}

	tasks, err := s.prioritizer.Prioritize(ctx, userID, teamID, scopeStart, scopeEnd, time.Now(), params.OptimalDuration)
	if err != nil {
		return nil, fmt.Errorf("prioritize tasks: %w", err)
	}

	policy, err := s.policies.FindActiveByOwner(ctx, domain.UserOwner(userID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load break policy: %w", err)
		}
		if teamID != uuid.Nil {
			policy, err = s.policies.FindActiveByOwner(ctx, domain.TeamOwner(teamID))
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("load team break policy: %w", err)
			}
		}
	}

	packed, err := s.packer.Pack(domain.UserOwner(userID), tasks, windows, policy, params.OptimalDuration)
	if err != nil {
		return nil, fmt.Errorf("pack schedule: %w", err)
	}

	result := &ScheduleResult{
		UserID:         userID,
		Scope:          scope,
		Date:           scopeStart,
		Blocks:         toPlannedBlocks(packed.Blocks),
		WindowMinutes:  packed.WindowMinutes,
		PlannedMinutes: packed.PlannedMinutes,
		CapacityUsage:  packed.CapacityUsage,
	}

	s.logger.Info("schedule generated",
		"user_id", userID,
		"scope", scope,
		"date", scopeStart.Format("2006-01-02"),
		"blocks", len(result.Blocks),
		"planned_minutes", result.PlannedMinutes,
		"capacity_usage", result.CapacityUsage,
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

// MaterializeBlocks turns a preview into planned domain blocks ready for
// commit.
func MaterializeBlocks(result *ScheduleResult) ([]*domain.TimeBlock, error) {
	owner := domain.UserOwner(result.UserID)
	blocks := make([]*domain.TimeBlock, 0, len(result.Blocks))
	for _, pb := range result.Blocks {
		var block *domain.TimeBlock
		var err error
		if pb.IsBreak {
			block, err = domain.NewBreakBlock(owner, pb.Title, pb.Start, pb.End, domain.BlockSourceAuto)
		} else {
			block, err = domain.NewWorkBlock(owner, pb.TaskID, pb.Title, pb.Start, pb.End, domain.BlockSourceAuto)
		}
		if err != nil {
			return nil, fmt.Errorf("materialize block %q: %w", pb.Title, err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func toPlannedBlocks(blocks []*domain.TimeBlock) []PlannedBlock {
	out := make([]PlannedBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, PlannedBlock{
			TaskID:  b.TaskID(),
			Title:   b.Title(),
			Start:   b.Start(),
			End:     b.End(),
			IsBreak: b.IsBreak(),
		})
	}
	return out
}

func scopeBounds(scope Scope, date time.Time) (time.Time, time.Time, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	switch scope {
	case ScopeDay:
		return day, day.AddDate(0, 0, 1), nil
	case ScopeWeek:
		return day, day.AddDate(0, 0, 7), nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidScope
	}
}

// reorderByPeakHours moves windows overlapping any peak hour ahead of the
// rest, preserving relative order within each group.
func reorderByPeakHours(windows []domain.Window, peakHours []int) []domain.Window {
	if len(peakHours) == 0 || len(windows) <= 1 {
		return windows
	}
	peak := make(map[int]bool, len(peakHours))
	for _, h := range peakHours {
		peak[h] = true
	}

	var preferred, rest []domain.Window
	for _, w := range windows {
		if overlapsPeakHour(w, peak) {
			preferred = append(preferred, w)
		} else {
			rest = append(rest, w)
		}
	}
	return append(preferred, rest...)
}

func overlapsPeakHour(w domain.Window, peak map[int]bool) bool {
	for t := w.Start(); t.Before(w.End()); t = t.Add(time.Hour) {
		if peak[t.Hour()] {
			return true
		}
	}
	return peak[w.End().Hour()] && w.End().Minute() > 0
}

func previewCacheKey(userID uuid.UUID, scope Scope, date time.Time) string {
	return fmt.Sprintf("schedule:%s:%s:%s", userID, scope, date.Format("2006-01-02"))
}
