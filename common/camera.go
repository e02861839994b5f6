package common

// Camera tracks the world point shown at the centre of the screen.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth    float64
	lookAhead float64
	thirds    bool

	// world bounds in pixels (empty means unbounded)
	bounds Rect
}

// NewCamera creates a camera for the given logical screen size, centred on
// the middle of the screen.
func NewCamera(screenW, screenH float64) *Camera {
	return &Camera{
		PosX:    screenW / 2,
		PosY:    screenH / 2,
		screenW: screenW,
		screenH: screenH,
		smooth:  0.15,
	}
}

func (c *Camera) SetSmooth(f float64) { c.smooth = Clamp(f, 0, 1) }

// SetLookAhead shifts the followed point this many pixels in the target's
// direction of travel.
func (c *Camera) SetLookAhead(px float64) { c.lookAhead = px }

// SetThirds switches to scrolling only when the target leaves the middle
// third of the view.
func (c *Camera) SetThirds(on bool) { c.thirds = on }

// SetWorldBounds limits the view to r. An empty r removes the limit.
func (c *Camera) SetWorldBounds(r Rect) { c.bounds = r }

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - c.screenW/2, c.PosY - c.screenH/2
}

// View returns the world-space rectangle currently on screen.
func (c *Camera) View() Rect {
	x, y := c.ViewTopLeft()
	return Rect{X: x, Y: y, Width: c.screenW, Height: c.screenH}
}

// Follow moves the camera toward target, which travels horizontally at vx.
// Call from the fixed-rate update loop to get consistent smoothing.
func (c *Camera) Follow(target Rect, vx float64) {
	if c.thirds {
		c.followThirds(target)
		c.clamp()
		return
	}

	tx := target.X + target.Width/2 + Sign(vx)*c.lookAhead
	ty := target.Y + target.Height/2
	if c.smooth <= 0 {
		c.PosX, c.PosY = tx, ty
	} else {
		c.PosX = Lerp(c.PosX, tx, c.smooth)
		c.PosY = Lerp(c.PosY, ty, c.smooth)
	}
	c.clamp()
}

func (c *Camera) followThirds(target Rect) {
	view := c.View()

	lo, hi := view.X+view.Width/3, view.X+2*view.Width/3
	if target.X < lo {
		c.PosX -= lo - target.X
	} else if target.Right() > hi {
		c.PosX += target.Right() - hi
	}

	lo, hi = view.Y+view.Height/3, view.Y+2*view.Height/3
	if target.Y < lo {
		c.PosY -= lo - target.Y
	} else if target.Bottom() > hi {
		c.PosY += target.Bottom() - hi
	}
}

// SnapTo immediately centres the camera on (x, y), still honouring the
// world bounds. Use after a level load or player reset.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX, c.PosY = x, y
	c.clamp()
}

func (c *Camera) clamp() {
	if c.bounds.Empty() {
		return
	}
	c.PosX = clampAxis(c.PosX, c.bounds.X, c.bounds.Width, c.screenW/2)
	c.PosY = clampAxis(c.PosY, c.bounds.Y, c.bounds.Height, c.screenH/2)
}

// clampAxis keeps a view of half-size half inside [lo, lo+size]. A world
// smaller than the view is centred.
func clampAxis(pos, lo, size, half float64) float64 {
	minP, maxP := lo+half, lo+size-half
	if maxP < minP {
		return lo + size/2
	}
	return Clamp(pos, minP, maxP)
}
