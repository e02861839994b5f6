package obj

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// PathStep is one entry of a looping velocity schedule: move at Velocity
// (pixels per second) for Duration seconds.
type PathStep struct {
	Velocity cp.Vector
	Duration float64
}

// VelocityPath is a piecewise-constant velocity schedule that cycles forever.
type VelocityPath struct {
	steps   []PathStep
	index   int
	elapsed float64
}

// NewVelocityPath copies steps into a new path. Every step needs a positive,
// finite duration.
func NewVelocityPath(steps []PathStep) (*VelocityPath, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidPath)
	}
	for i, s := range steps {
		if !(s.Duration > 0) || math.IsInf(s.Duration, 0) {
			return nil, fmt.Errorf("%w: step %d duration %v", ErrInvalidPath, i, s.Duration)
		}
	}
	return &VelocityPath{steps: append([]PathStep(nil), steps...)}, nil
}

// Velocity returns the velocity of the active step. A nil path is still.
func (p *VelocityPath) Velocity() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.steps[p.index].Velocity
}

// Index returns the active step index.
func (p *VelocityPath) Index() int {
	if p == nil {
		return 0
	}
	return p.index
}

// Steps returns a copy of the schedule.
func (p *VelocityPath) Steps() []PathStep {
	if p == nil {
		return nil
	}
	return append([]PathStep(nil), p.steps...)
}

// Tick advances the schedule by dt and returns the displacement covered.
// Time crossing a step boundary is split between the two steps.
func (p *VelocityPath) Tick(dt float64) cp.Vector {
	var disp cp.Vector
	if p == nil || dt <= 0 {
		return disp
	}
	remaining := dt
	for remaining > 0 {
		step := p.steps[p.index]
		left := step.Duration - p.elapsed
		if remaining < left {
			disp = disp.Add(step.Velocity.Mult(remaining))
			p.elapsed += remaining
			break
		}
		disp = disp.Add(step.Velocity.Mult(left))
		remaining -= left
		p.elapsed = 0
		p.index = (p.index + 1) % len(p.steps)
	}
	return disp
}
