package domain

import (
	"fmt"
	"strings"
)

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityUrgent   Priority = "urgent"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ParsePriority parses a priority from its string form.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(s)) {
	case PriorityCritical:
		return PriorityCritical, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// Weight returns the base scheduling score contribution of the priority.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityCritical:
		return 100
	case PriorityUrgent:
		return 90
	case PriorityHigh:
		return 70
	case PriorityMedium:
		return 40
	case PriorityLow:
		return 10
	default:
		return 0
	}
}

func (p Priority) String() string {
	return string(p)
}
