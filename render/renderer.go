package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
)

const (
	dashBarWidth  = 120
	dashBarHeight = 6
	hudLineHeight = 16
)

// Renderer draws a world as flat shapes. Masks are uploaded to the GPU once
// and reused.
type Renderer struct {
	Palette Palette
	// Debug outlines every bounding box and prints the player state.
	Debug bool

	masks map[*obj.Mask]*ebiten.Image
}

func NewRenderer(p Palette) *Renderer {
	return &Renderer{Palette: p, masks: make(map[*obj.Mask]*ebiten.Image)}
}

// Forget drops cached mask images, e.g. after a level reload.
func (r *Renderer) Forget() {
	for m, img := range r.masks {
		img.Deallocate()
		delete(r.masks, m)
	}
}

// Draw renders w with the view's top-left at (camX, camY).
func (r *Renderer) Draw(screen *ebiten.Image, w *obj.World, camX, camY float64) {
	screen.Fill(r.Palette.Background)

	for _, o := range w.Obstacles() {
		r.drawObstacle(screen, o, camX, camY)
	}
	for _, k := range w.KillZones() {
		fillRect(screen, k.ScreenRect(camX, camY), r.Palette.KillZone)
	}
	for _, p := range w.Portals() {
		a, b := p.ScreenRects(camX, camY)
		fillRect(screen, a, r.Palette.Portal)
		fillRect(screen, b, r.Palette.Portal)
	}

	r.drawTrail(screen, w.Recorder(), camX, camY)

	p := w.Player()
	clr := r.Palette.Player
	if p.Dashing() {
		clr = r.Palette.Dashing
	}
	fillRect(screen, p.ScreenRect(camX, camY), clr)

	if r.Debug {
		for _, o := range w.Obstacles() {
			strokeRect(screen, o.ScreenRect(camX, camY), r.Palette.Text)
		}
		strokeRect(screen, p.ScreenRect(camX, camY), r.Palette.Text)
	}
}

func (r *Renderer) drawObstacle(screen *ebiten.Image, o *obj.Obstacle, camX, camY float64) {
	clr := r.Palette.Obstacle
	if o.Path() != nil {
		clr = r.Palette.Moving
	}

	sr := o.ScreenRect(camX, camY)
	if o.HasRect() {
		fillRect(screen, sr, clr)
		return
	}

	img := r.maskImage(o.Mask())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(sr.X, sr.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

func (r *Renderer) maskImage(m *obj.Mask) *ebiten.Image {
	if img, ok := r.masks[m]; ok {
		return img
	}
	if r.masks == nil {
		r.masks = make(map[*obj.Mask]*ebiten.Image)
	}
	img := ebiten.NewImageFromImage(m.Image())
	r.masks[m] = img
	return img
}

func (r *Renderer) drawTrail(screen *ebiten.Image, rec *obj.Recorder, camX, camY float64) {
	if rec == nil || rec.Len() < 2 {
		return
	}
	samples := rec.Samples()
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		vector.StrokeLine(screen,
			float32(a.X-camX), float32(a.Y-camY),
			float32(b.X-camX), float32(b.Y-camY),
			2, r.Palette.Dashing, true)
	}
}

// DrawHUD prints the dash charge bar and, in debug mode, the player state.
func (r *Renderer) DrawHUD(screen *ebiten.Image, w *obj.World, level string) {
	p := w.Player()

	x, y := float32(10), float32(10)
	vector.StrokeRect(screen, x, y, dashBarWidth, dashBarHeight, 1, r.Palette.Text, false)
	fill := r.Palette.Obstacle
	if p.DashReady() {
		fill = r.Palette.Dashing
	}
	vector.FillRect(screen, x, y, float32(p.DashCharge()*dashBarWidth), dashBarHeight, fill, false)

	lines := []string{level}
	if r.Debug {
		lines = append(lines, HUDLines(w)...)
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 24+i*hudLineHeight)
	}
}

// HUDLines describes the world state one fact per line.
func HUDLines(w *obj.World) []string {
	p := w.Player()
	lines := []string{
		fmt.Sprintf("frame %d  fps %.0f", w.Frame(), ebiten.ActualFPS()),
		p.String(),
		fmt.Sprintf("cap %.0f  wall dir %d", p.SpeedCap(), p.WallJumpDir()),
		fmt.Sprintf("since jump %.2f  floor %.2f  wall %.2f  dash %.2f",
			p.TimeSinceJump(), p.TimeSinceTouchedFloor(), p.TimeSinceTouchedWall(), p.TimeSinceDash()),
	}
	if rec := w.Recorder(); rec.Active() {
		lines = append(lines, fmt.Sprintf("recording %d samples", rec.Len()))
	}
	return lines
}

func fillRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1.0, clr, false)
}
