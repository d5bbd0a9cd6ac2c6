package services

import (
	"fmt"
	"time"

	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
)

// MinPackedMinutes is the smallest remainder of a window the packer will
// still place work into. Anything shorter is left unscheduled rather than
// fragmented.
const MinPackedMinutes = 10

// PackResult is the outcome of one packing run.
type PackResult struct {
	Blocks         []*plannerDomain.TimeBlock
	WindowMinutes  int
	PlannedMinutes int
	CapacityUsage  float64
}

// Packer lays scored tasks into free windows, interleaving breaks
// according to the owner's break policy.
type Packer struct{}

// NewPacker creates a packer.
func NewPacker() *Packer {
	return &Packer{}
}

// Pack consumes tasks and windows left to right in a single pass. Each
// task is split into focus-sized blocks; a break follows every block that
// leaves work remaining, when the break still fits in the window. Every
// cycleCount-th break is a long break. Tasks that receive no minutes are
// omitted without error.
//
// optimalDuration, when positive, replaces the default estimate for tasks
// that carry none.
func (p *Packer) Pack(
	owner plannerDomain.Owner,
	tasks []ScoredTask,
	windows []plannerDomain.Window,
	policy *plannerDomain.BreakPolicy,
	optimalDuration int,
) (*PackResult, error) {
	if policy == nil {
		policy = plannerDomain.DefaultBreakPolicy(owner)
	}

	result := &PackResult{
		WindowMinutes: plannerDomain.TotalMinutes(windows),
	}
	if len(windows) == 0 || len(tasks) == 0 {
		return result, nil
	}

	windowIdx := 0
	cursor := windows[0].Start()
	breaksEmitted := 0

	for _, st := range tasks {
		remaining := st.Task.EstimatedDuration()
		if !st.Task.HasEstimate() && optimalDuration > 0 {
			remaining = optimalDuration
		}

		for remaining > 0 && windowIdx < len(windows) {
			window := windows[windowIdx]
			if cursor.Before(window.Start()) {
				cursor = window.Start()
			}

			timeLeft := int(window.End().Sub(cursor) / time.Minute)
			if timeLeft < MinPackedMinutes {
				windowIdx++
				if windowIdx < len(windows) {
					cursor = windows[windowIdx].Start()
				}
				continue
			}

			blockSize := remaining
			if timeLeft < blockSize {
				blockSize = timeLeft
			}
			if policy.FocusMinutes() < blockSize {
				blockSize = policy.FocusMinutes()
			}

			end := cursor.Add(time.Duration(blockSize) * time.Minute)
			block, err := plannerDomain.NewWorkBlock(owner, st.Task.ID(), st.Task.Title(), cursor, end, plannerDomain.BlockSourceAuto)
			if err != nil {
				return nil, fmt.Errorf("pack work block for task %s: %w", st.Task.ID(), err)
			}
			result.Blocks = append(result.Blocks, block)
			result.PlannedMinutes += blockSize
			cursor = end
			remaining -= blockSize

			if remaining > 0 {
				breakLen := policy.BreakMinutes()
				title := "Break"
				if (breaksEmitted+1)%policy.CycleCount() == 0 {
					breakLen = policy.LongBreakMinutes()
					title = "Long break"
				}
				breakEnd := cursor.Add(time.Duration(breakLen) * time.Minute)
				if !breakEnd.After(window.End()) {
					breakBlock, err := plannerDomain.NewBreakBlock(owner, title, cursor, breakEnd, plannerDomain.BlockSourceAuto)
					if err != nil {
						return nil, fmt.Errorf("pack break block: %w", err)
					}
					result.Blocks = append(result.Blocks, breakBlock)
					cursor = breakEnd
					breaksEmitted++
				}
			}
		}
	}

	if result.WindowMinutes > 0 {
		result.CapacityUsage = float64(result.PlannedMinutes) / float64(result.WindowMinutes)
	}
	return result, nil
}
