package domain

import (
	"errors"
	"math"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrReviewExists     = errors.New("daily review already exists for this date")
	ErrTooManyTopTasks  = errors.New("tomorrow's top tasks are limited to three")
)

// StreakThreshold is the completion rate (percent) a day needs to extend
// the streak.
const StreakThreshold = 70.0

// MaxTomorrowTop is the cap on tomorrow's highlighted tasks.
const MaxTomorrowTop = 3

// DailyReview captures one user's productivity metrics and journal for a
// single date. Exactly one review exists per (user, date).
type DailyReview struct {
	sharedDomain.BaseEntity
	userID            uuid.UUID
	date              time.Time
	tasksPlanned      int
	tasksCompleted    int
	completionRate    float64
	focusTimeMinutes  int
	breakTimeMinutes  int
	productivityScore float64
	currentStreak     int

	// Journal
	summary     string
	mood        string
	highlights  []string
	lessons     []string
	tomorrowTop []string
}

// NewDailyReview creates an empty review for a date.
func NewDailyReview(userID uuid.UUID, date time.Time) *DailyReview {
	return &DailyReview{
		BaseEntity: sharedDomain.NewBaseEntity(),
		userID:     userID,
		date:       truncateToDay(date),
	}
}

// Getters
func (dr *DailyReview) UserID() uuid.UUID          { return dr.userID }
func (dr *DailyReview) Date() time.Time            { return dr.date }
func (dr *DailyReview) TasksPlanned() int          { return dr.tasksPlanned }
func (dr *DailyReview) TasksCompleted() int        { return dr.tasksCompleted }
func (dr *DailyReview) CompletionRate() float64    { return dr.completionRate }
func (dr *DailyReview) FocusTimeMinutes() int      { return dr.focusTimeMinutes }
func (dr *DailyReview) BreakTimeMinutes() int      { return dr.breakTimeMinutes }
func (dr *DailyReview) ProductivityScore() float64 { return dr.productivityScore }
func (dr *DailyReview) CurrentStreak() int         { return dr.currentStreak }
func (dr *DailyReview) Summary() string            { return dr.summary }
func (dr *DailyReview) Mood() string               { return dr.mood }
func (dr *DailyReview) Highlights() []string       { return dr.highlights }
func (dr *DailyReview) Lessons() []string          { return dr.lessons }
func (dr *DailyReview) TomorrowTop() []string      { return dr.tomorrowTop }

// BreakRatio returns break minutes relative to focus minutes, 0 when no
// focus time was logged.
func (dr *DailyReview) BreakRatio() float64 {
	if dr.focusTimeMinutes == 0 {
		return 0
	}
	return float64(dr.breakTimeMinutes) / float64(dr.focusTimeMinutes)
}

// ApplyMetrics recomputes the review from the day's raw numbers. The
// call is idempotent for unchanged inputs. previousStreak is the streak
// recorded on the closest earlier review, 0 when none exists.
func (dr *DailyReview) ApplyMetrics(tasksPlanned, tasksCompleted, focusMinutes, breakMinutes, previousStreak int) {
	dr.tasksPlanned = tasksPlanned
	dr.tasksCompleted = tasksCompleted
	dr.focusTimeMinutes = focusMinutes
	dr.breakTimeMinutes = breakMinutes

	dr.completionRate = 0
	if tasksPlanned > 0 {
		dr.completionRate = float64(tasksCompleted) / float64(tasksPlanned) * 100
	}

	if dr.completionRate >= StreakThreshold {
		dr.currentStreak = previousStreak + 1
	} else {
		dr.currentStreak = 0
	}

	dr.productivityScore = computeProductivityScore(dr.completionRate, focusMinutes, dr.BreakRatio(), dr.currentStreak)
	dr.Touch()
}

// computeProductivityScore weighs completion, focus volume, break hygiene
// and the running streak into a 0-100 score. Five hours of focus and a
// 20% break ratio are treated as optimal.
func computeProductivityScore(completionRate float64, focusMinutes int, breakRatio float64, streak int) float64 {
	score := completionRate * 0.4
	score += math.Min(float64(focusMinutes)/300, 1.0) * 30
	if focusMinutes > 0 {
		score += math.Max(0, 15-math.Abs(breakRatio-0.2)*75)
	}
	score += math.Min(float64(streak)*2, 15)

	return math.Min(100, math.Max(0, score))
}

// WriteJournal records the reflective part of the review.
func (dr *DailyReview) WriteJournal(summary, mood string, highlights, lessons, tomorrowTop []string) error {
	if len(tomorrowTop) > MaxTomorrowTop {
		return ErrTooManyTopTasks
	}
	dr.summary = summary
	dr.mood = mood
	dr.highlights = highlights
	dr.lessons = lessons
	dr.tomorrowTop = tomorrowTop
	dr.Touch()
	return nil
}

// RehydrateDailyReview recreates a review from persisted state.
func RehydrateDailyReview(
	id uuid.UUID,
	userID uuid.UUID,
	date time.Time,
	tasksPlanned, tasksCompleted int,
	completionRate float64,
	focusMinutes, breakMinutes int,
	productivityScore float64,
	currentStreak int,
	summary, mood string,
	highlights, lessons, tomorrowTop []string,
	createdAt, updatedAt time.Time,
) *DailyReview {
	return &DailyReview{
		BaseEntity:        sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:            userID,
		date:              date,
		tasksPlanned:      tasksPlanned,
		tasksCompleted:    tasksCompleted,
		completionRate:    completionRate,
		focusTimeMinutes:  focusMinutes,
		breakTimeMinutes:  breakMinutes,
		productivityScore: productivityScore,
		currentStreak:     currentStreak,
		summary:           summary,
		mood:              mood,
		highlights:        highlights,
		lessons:           lessons,
		tomorrowTop:       tomorrowTop,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
