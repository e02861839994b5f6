package obj

import (
	"fmt"

	"github.com/milk9111/platformer/common"
)

// KillZone kills the player on overlap.
type KillZone struct {
	X, Y          float64
	Width, Height float64

	path *VelocityPath
}

func NewKillZone(x, y, w, h float64, path *VelocityPath) (*KillZone, error) {
	if !(w > 0) || !(h > 0) {
		return nil, fmt.Errorf("%w: kill zone %vx%v", ErrDegenerateShape, w, h)
	}
	return &KillZone{X: x, Y: y, Width: w, Height: h, path: path}, nil
}

func (k *KillZone) Rect() common.Rect {
	return common.Rect{X: k.X, Y: k.Y, Width: k.Width, Height: k.Height}
}

func (k *KillZone) ScreenRect(camX, camY float64) common.Rect {
	return k.Rect().ScreenRect(camX, camY)
}

func (k *KillZone) Overlaps(r common.Rect) bool {
	return k.Rect().Intersects(r)
}

func (k *KillZone) Tick(dt float64) {
	d := k.path.Tick(dt)
	k.X += d.X
	k.Y += d.Y
}

// AnyKillZone reports whether r overlaps any zone.
func AnyKillZone(zones []*KillZone, r common.Rect) bool {
	for _, z := range zones {
		if z != nil && z.Overlaps(r) {
			return true
		}
	}
	return false
}
