package obj

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Portal links two equally sized rectangles. Touching one moves the player
// to the other.
type Portal struct {
	a, b common.Rect
}

// TeleportEffect is the position a transit moves the player to.
type TeleportEffect struct {
	To   cp.Vector
	From int // endpoint entered: 1 or 2
}

func NewPortal(a, b common.Rect) (*Portal, error) {
	if a.Empty() || b.Empty() {
		return nil, fmt.Errorf("%w: portal %vx%v / %vx%v", ErrDegenerateShape, a.Width, a.Height, b.Width, b.Height)
	}
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("%w: %vx%v vs %vx%v", ErrPortalMismatch, a.Width, a.Height, b.Width, b.Height)
	}
	return &Portal{a: a, b: b}, nil
}

// Vertical portals are taller than wide; the player passes through them
// horizontally.
func (p *Portal) Vertical() bool { return p.a.Width <= p.a.Height }

// ScreenRects returns both endpoints relative to a camera top-left.
func (p *Portal) ScreenRects(camX, camY float64) (common.Rect, common.Rect) {
	return p.a.ScreenRect(camX, camY), p.b.ScreenRect(camX, camY)
}

// Touches reports whether r touches either endpoint, edges included.
func (p *Portal) Touches(r common.Rect) bool {
	return p.a.Touches(r) || p.b.Touches(r)
}

// Transit returns where r should be moved to. Nothing happens while
// inPortal is set, so a player only teleports on the first contact.
func (p *Portal) Transit(r common.Rect, inPortal bool) (TeleportEffect, bool) {
	if inPortal {
		return TeleportEffect{}, false
	}
	switch {
	case p.a.Touches(r):
		return TeleportEffect{To: p.remap(r, p.a, p.b), From: 1}, true
	case p.b.Touches(r):
		return TeleportEffect{To: p.remap(r, p.b, p.a), From: 2}, true
	}
	return TeleportEffect{}, false
}

// remap keeps the offset along the portal and places r just outside dst on
// the side matching where it stood relative to src.
func (p *Portal) remap(r, src, dst common.Rect) cp.Vector {
	if p.Vertical() {
		y := dst.Y + (r.Y - src.Y)
		x := dst.X + dst.Width
		if r.X > src.X {
			x = dst.X - r.Width
		}
		return cp.Vector{X: x, Y: y}
	}
	x := dst.X + (r.X - src.X)
	y := dst.Y + dst.Height
	if r.Y > src.Y {
		y = dst.Y - r.Height
	}
	return cp.Vector{X: x, Y: y}
}

// checkPortals applies the first pending transit. touching reports whether
// r touches any endpoint before the move.
func checkPortals(portals []*Portal, r common.Rect, inPortal bool) (effect TeleportEffect, fired, touching bool) {
	for _, p := range portals {
		if p == nil || !p.Touches(r) {
			continue
		}
		touching = true
		if e, ok := p.Transit(r, inPortal); ok {
			return e, true, true
		}
	}
	return TeleportEffect{}, false, touching
}
