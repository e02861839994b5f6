package obj

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// ShapeKind selects the collision strategy of an obstacle.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeMask
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeMask:
		return "mask"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

// Obstacle is a solid, optionally moving collision shape.
//
// X and Y are the top-left corner for rectangles and masks and the centre
// for circles. TopLeft gives the top-left for every kind.
type Obstacle struct {
	X, Y float64

	kind   ShapeKind
	width  float64
	height float64
	radius float64
	mask   *Mask

	path   *VelocityPath
	delta  cp.Vector
	handle Handle
}

// NewRectObstacle creates an axis-aligned box.
func NewRectObstacle(x, y, w, h float64, path *VelocityPath) (*Obstacle, error) {
	if !(w > 0) || !(h > 0) {
		return nil, fmt.Errorf("%w: rect %vx%v", ErrDegenerateShape, w, h)
	}
	return &Obstacle{X: x, Y: y, kind: ShapeRect, width: w, height: h, path: path}, nil
}

// NewCircleObstacle creates a disc centred on (cx, cy).
func NewCircleObstacle(cx, cy, r float64, path *VelocityPath) (*Obstacle, error) {
	m, err := NewCircleMask(r)
	if err != nil {
		return nil, err
	}
	w, h := m.Size()
	return &Obstacle{
		X: cx, Y: cy,
		kind:   ShapeCircle,
		width:  float64(w),
		height: float64(h),
		radius: r,
		mask:   m,
		path:   path,
	}, nil
}

// NewMaskObstacle creates a pixel-exact obstacle with its top-left at (x, y).
func NewMaskObstacle(x, y float64, m *Mask, path *VelocityPath) (*Obstacle, error) {
	if m.Count() == 0 {
		return nil, fmt.Errorf("%w: empty mask", ErrDegenerateShape)
	}
	w, h := m.Size()
	return &Obstacle{X: x, Y: y, kind: ShapeMask, width: float64(w), height: float64(h), mask: m, path: path}, nil
}

func (o *Obstacle) Kind() ShapeKind { return o.kind }

// HasRect reports whether collisions are exact against the bounding box.
func (o *Obstacle) HasRect() bool { return o.kind == ShapeRect }

func (o *Obstacle) Mask() *Mask { return o.mask }

func (o *Obstacle) Path() *VelocityPath { return o.path }

// Handle returns the handle issued by the owning World, or the zero Handle.
func (o *Obstacle) Handle() Handle { return o.handle }

// Delta returns how far the obstacle moved during its last Tick.
func (o *Obstacle) Delta() cp.Vector { return o.delta }

// Moving reports whether the last Tick displaced the obstacle.
func (o *Obstacle) Moving() bool { return o.delta.X != 0 || o.delta.Y != 0 }

// TopLeft returns the top-left corner of the bounding box.
func (o *Obstacle) TopLeft() (float64, float64) {
	if o.kind == ShapeCircle {
		return o.X - o.radius, o.Y - o.radius
	}
	return o.X, o.Y
}

// Bounds returns the world-space bounding box.
func (o *Obstacle) Bounds() common.Rect {
	x, y := o.TopLeft()
	return common.Rect{X: x, Y: y, Width: o.width, Height: o.height}
}

// ScreenRect returns the bounding box relative to a camera top-left.
func (o *Obstacle) ScreenRect(camX, camY float64) common.Rect {
	return o.Bounds().ScreenRect(camX, camY)
}

// Tick moves the obstacle along its velocity path.
func (o *Obstacle) Tick(dt float64) {
	o.delta = o.path.Tick(dt)
	o.X += o.delta.X
	o.Y += o.delta.Y
}

// CollidesWith tests the obstacle against an actor rectangle. A nil actor
// mask means the actor is solid across its whole rectangle.
func (o *Obstacle) CollidesWith(r common.Rect, actorMask *Mask) bool {
	b := o.Bounds()
	if !b.Intersects(r) {
		return false
	}
	if o.HasRect() && actorMask == nil {
		return true
	}

	offX := int(math.Round(r.X - b.X))
	offY := int(math.Round(r.Y - b.Y))
	if o.HasRect() {
		// box against a shaped actor: only the actor's pixels matter
		return actorMask.OverlapRect(-offX, -offY, int(o.width), int(o.height))
	}
	if actorMask == nil {
		return o.mask.OverlapRect(offX, offY, int(math.Round(r.Width)), int(math.Round(r.Height)))
	}
	return o.mask.Overlap(actorMask, offX, offY)
}
