package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Recorder samples the player's position while active. It is used to
// measure jump arcs when tuning.
type Recorder struct {
	active  bool
	samples []cp.Vector
}

// Start clears previous samples and begins recording.
func (r *Recorder) Start() {
	r.active = true
	r.samples = r.samples[:0]
}

func (r *Recorder) Stop() { r.active = false }

// Toggle starts or stops recording and reports whether it is now active.
func (r *Recorder) Toggle() bool {
	if r.active {
		r.Stop()
	} else {
		r.Start()
	}
	return r.active
}

func (r *Recorder) Active() bool { return r != nil && r.active }

func (r *Recorder) Record(x, y float64) {
	if !r.Active() {
		return
	}
	r.samples = append(r.samples, cp.Vector{X: x, Y: y})
}

func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	return len(r.samples)
}

// Samples returns a copy of the recorded positions.
func (r *Recorder) Samples() []cp.Vector {
	if r == nil {
		return nil
	}
	return append([]cp.Vector(nil), r.samples...)
}

// VerticalSpan returns the lowest and highest y recorded and the distance
// between them. ok is false when nothing was recorded.
func (r *Recorder) VerticalSpan() (minY, maxY, height float64, ok bool) {
	if r.Len() == 0 {
		return 0, 0, 0, false
	}
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, s := range r.samples {
		minY = math.Min(minY, s.Y)
		maxY = math.Max(maxY, s.Y)
	}
	return minY, maxY, maxY - minY, true
}
