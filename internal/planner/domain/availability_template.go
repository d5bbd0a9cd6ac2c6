package domain

import (
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday   = errors.New("day of week must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidTimeOfDay = errors.New("end time must be after start time within the day")
)

// Default availability applied when neither the user nor their team has
// templates for a weekday.
const (
	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "17:00"
)

// TimeOfDay is a wall-clock time within a day, independent of date.
type TimeOfDay struct {
	hour   int
	minute int
}

// NewTimeOfDay validates hour and minute ranges.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay{hour: t.Hour(), minute: t.Minute()}, nil
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.hour < other.hour || (t.hour == other.hour && t.minute < other.minute)
}

// On anchors the wall-clock time to a concrete date in the given location.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, loc)
}

// Weekday maps time.Weekday to the 0=Monday..6=Sunday convention used by
// availability templates.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// AvailabilityTemplate declares a recurring free span on one weekday.
type AvailabilityTemplate struct {
	sharedDomain.BaseEntity
	owner     Owner
	dayOfWeek int // 0=Monday..6=Sunday
	startTime TimeOfDay
	endTime   TimeOfDay
}

// NewAvailabilityTemplate creates a template for a weekday span.
func NewAvailabilityTemplate(owner Owner, dayOfWeek int, startTime, endTime TimeOfDay) (*AvailabilityTemplate, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidWeekday
	}
	if !startTime.Before(endTime) {
		return nil, ErrInvalidTimeOfDay
	}
	return &AvailabilityTemplate{
		BaseEntity: sharedDomain.NewBaseEntity(),
		owner:      owner,
		dayOfWeek:  dayOfWeek,
		startTime:  startTime,
		endTime:    endTime,
	}, nil
}

// Getters
func (at *AvailabilityTemplate) Owner() Owner         { return at.owner }
func (at *AvailabilityTemplate) DayOfWeek() int       { return at.dayOfWeek }
func (at *AvailabilityTemplate) StartTime() TimeOfDay { return at.startTime }
func (at *AvailabilityTemplate) EndTime() TimeOfDay   { return at.endTime }

// Materialize turns the template into a concrete window on a date.
func (at *AvailabilityTemplate) Materialize(date time.Time, loc *time.Location) Window {
	return Window{
		start: at.startTime.On(date, loc),
		end:   at.endTime.On(date, loc),
	}
}

// DefaultWindow returns the 09:00-17:00 fallback window for a date.
func DefaultWindow(date time.Time, loc *time.Location) Window {
	start, _ := ParseTimeOfDay(DefaultWorkdayStart)
	end, _ := ParseTimeOfDay(DefaultWorkdayEnd)
	return Window{start: start.On(date, loc), end: end.On(date, loc)}
}

// RehydrateAvailabilityTemplate recreates a template from persisted state.
func RehydrateAvailabilityTemplate(
	id uuid.UUID,
	owner Owner,
	dayOfWeek int,
	startTime, endTime TimeOfDay,
	createdAt, updatedAt time.Time,
) *AvailabilityTemplate {
	return &AvailabilityTemplate{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		owner:      owner,
		dayOfWeek:  dayOfWeek,
		startTime:  startTime,
		endTime:    endTime,
	}
}
