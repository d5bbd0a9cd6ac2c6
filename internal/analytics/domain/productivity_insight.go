package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrUnknownInsightType = errors.New("unknown insight type")

// InsightValidityDays is how long a generated insight stays valid before
// the purge job removes it.
const InsightValidityDays = 30

// InsightType identifies what a productivity insight describes.
type InsightType string

const (
	InsightPeakHours         InsightType = "peak_hours"
	InsightTaskDuration      InsightType = "task_duration"
	InsightBreakPattern      InsightType = "break_pattern"
	InsightWeeklyTrend       InsightType = "weekly_trend"
	InsightCompletionPattern InsightType = "completion_pattern"
)

// AllInsightTypes lists every insight the generator produces.
func AllInsightTypes() []InsightType {
	return []InsightType{
		InsightPeakHours,
		InsightTaskDuration,
		InsightBreakPattern,
		InsightWeeklyTrend,
		InsightCompletionPattern,
	}
}

// ProductivityInsight is a statistically derived scheduling parameter.
// One active insight exists per (user, type); regeneration overwrites it.
type ProductivityInsight struct {
	sharedDomain.BaseEntity
	userID          uuid.UUID
	insightType     InsightType
	data            map[string]any
	confidenceScore float64
	sampleSize      int
	validFrom       time.Time
	validUntil      time.Time
	active          bool
}

// NewProductivityInsight creates an active insight valid for the default
// window.
func NewProductivityInsight(userID uuid.UUID, insightType InsightType, data map[string]any, confidenceScore float64, sampleSize int) *ProductivityInsight {
	now := time.Now().UTC()
	return &ProductivityInsight{
		BaseEntity:      sharedDomain.NewBaseEntity(),
		userID:          userID,
		insightType:     insightType,
		data:            data,
		confidenceScore: clampConfidence(confidenceScore),
		sampleSize:      sampleSize,
		validFrom:       now,
		validUntil:      now.AddDate(0, 0, InsightValidityDays),
		active:          true,
	}
}

// Getters
func (pi *ProductivityInsight) UserID() uuid.UUID        { return pi.userID }
func (pi *ProductivityInsight) Type() InsightType        { return pi.insightType }
func (pi *ProductivityInsight) Data() map[string]any     { return pi.data }
func (pi *ProductivityInsight) ConfidenceScore() float64 { return pi.confidenceScore }
func (pi *ProductivityInsight) SampleSize() int          { return pi.sampleSize }
func (pi *ProductivityInsight) ValidFrom() time.Time     { return pi.validFrom }
func (pi *ProductivityInsight) ValidUntil() time.Time    { return pi.validUntil }
func (pi *ProductivityInsight) IsActive() bool           { return pi.active }

// Refresh replaces the insight's payload and restarts its validity.
func (pi *ProductivityInsight) Refresh(data map[string]any, confidenceScore float64, sampleSize int) {
	now := time.Now().UTC()
	pi.data = data
	pi.confidenceScore = clampConfidence(confidenceScore)
	pi.sampleSize = sampleSize
	pi.validFrom = now
	pi.validUntil = now.AddDate(0, 0, InsightValidityDays)
	pi.active = true
	pi.Touch()
}

// Deactivate retires a stale insight.
func (pi *ProductivityInsight) Deactivate() {
	pi.active = false
	pi.Touch()
}

// IsExpired reports whether the insight's validity window has passed.
func (pi *ProductivityInsight) IsExpired(now time.Time) bool {
	return now.After(pi.validUntil)
}

func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RehydrateProductivityInsight recreates an insight from persisted state.
func RehydrateProductivityInsight(
	id uuid.UUID,
	userID uuid.UUID,
	insightType InsightType,
	data map[string]any,
	confidenceScore float64,
	sampleSize int,
	validFrom, validUntil time.Time,
	active bool,
	createdAt, updatedAt time.Time,
) *ProductivityInsight {
	return &ProductivityInsight{
		BaseEntity:      sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:          userID,
		insightType:     insightType,
		data:            data,
		confidenceScore: confidenceScore,
		sampleSize:      sampleSize,
		validFrom:       validFrom,
		validUntil:      validUntil,
		active:          active,
	}
}
