package obj

import (
	"image"
	"image/color"
	"math/bits"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObstacleConstructorsRejectDegenerateShapes(t *testing.T) {
	cases := []struct {
		name  string
		build func() (*Obstacle, error)
	}{
		{"zero_width_rect", func() (*Obstacle, error) { return NewRectObstacle(0, 0, 0, 10, nil) }},
		{"negative_height_rect", func() (*Obstacle, error) { return NewRectObstacle(0, 0, 10, -1, nil) }},
		{"zero_radius", func() (*Obstacle, error) { return NewCircleObstacle(0, 0, 0, nil) }},
		{"empty_mask", func() (*Obstacle, error) { return NewMaskObstacle(0, 0, NewMask(4, 4, false), nil) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o, err := c.build()
			require.ErrorIs(t, err, ErrDegenerateShape)
			assert.Nil(t, o)
		})
	}
}

func TestRectObstacleCollision(t *testing.T) {
	o := rectObstacle(t, 100, 100, 50, 20)
	cases := []struct {
		name string
		r    common.Rect
		want bool
	}{
		{"inside", common.Rect{X: 110, Y: 105, Width: 10, Height: 10}, true},
		{"standing_on_top", common.Rect{X: 110, Y: 60, Width: 40, Height: 40}, false},
		{"flush_left", common.Rect{X: 60, Y: 100, Width: 40, Height: 40}, false},
		{"one_pixel_in", common.Rect{X: 61, Y: 100, Width: 40, Height: 40}, true},
		{"far_away", common.Rect{X: 500, Y: 500, Width: 40, Height: 40}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, o.CollidesWith(c.r, nil))
		})
	}
}

func TestCircleObstacleCollision(t *testing.T) {
	o, err := NewCircleObstacle(100, 100, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, ShapeCircle, o.Kind())
	assert.False(t, o.HasRect())
	assert.Equal(t, common.Rect{X: 80, Y: 80, Width: 40, Height: 40}, o.Bounds())

	cases := []struct {
		name string
		r    common.Rect
		want bool
	}{
		{"centre", common.Rect{X: 98, Y: 98, Width: 5, Height: 5}, true},
		{"bounding_box_corner", common.Rect{X: 80, Y: 80, Width: 5, Height: 5}, false},
		{"top_edge", common.Rect{X: 95, Y: 75, Width: 10, Height: 6}, true},
		{"outside_bounds", common.Rect{X: 121, Y: 100, Width: 5, Height: 5}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, o.CollidesWith(c.r, nil))
		})
	}
}

func TestMaskObstacleFromImage(t *testing.T) {
	// An L shape: left column and bottom row opaque.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.SetNRGBA(0, i, color.NRGBA{A: 255})
		img.SetNRGBA(i, 7, color.NRGBA{A: 200})
	}
	img.SetNRGBA(4, 4, color.NRGBA{A: 100})

	m, err := MaskFromImage(img)
	require.NoError(t, err)
	assert.Equal(t, 15, m.Count())
	assert.False(t, m.Get(4, 4), "alpha 100 is below the threshold")

	o, err := NewMaskObstacle(10, 10, m, nil)
	require.NoError(t, err)
	assert.Equal(t, ShapeMask, o.Kind())

	assert.False(t, o.CollidesWith(common.Rect{X: 12, Y: 10, Width: 5, Height: 5}, nil), "hollow interior")
	assert.True(t, o.CollidesWith(common.Rect{X: 8, Y: 10, Width: 3, Height: 3}, nil), "left column")
	assert.True(t, o.CollidesWith(common.Rect{X: 14, Y: 16, Width: 3, Height: 3}, nil), "bottom row")
}

func TestMaskFromImageRejectsTransparent(t *testing.T) {
	_, err := MaskFromImage(image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	require.ErrorIs(t, err, ErrDegenerateShape)
}

func TestCircleMaskIsSymmetric(t *testing.T) {
	m, err := NewCircleMask(10)
	require.NoError(t, err)
	w, h := m.Size()
	require.Equal(t, 20, w)
	require.Equal(t, 20, h)
	for y := 0; y < h/2; y++ {
		assert.Equal(t, m.rowCount(y), m.rowCount(h-1-y), "row %d", y)
	}
	assert.Equal(t, 20, m.rowCount(h/2))
	assert.Less(t, m.rowCount(0), m.rowCount(h/2))
}

func TestMaskOverlap(t *testing.T) {
	a := NewMask(100, 3, false)
	a.Set(70, 1)
	b := NewMask(4, 4, true)

	assert.True(t, a.Overlap(b, 68, 0))
	assert.False(t, a.Overlap(b, 71, 0))
	assert.True(t, a.OverlapRect(64, 0, 10, 3))
	assert.False(t, a.OverlapRect(0, 0, 70, 3))
	assert.False(t, a.OverlapRect(70, 2, 1, 1))

	img := a.Image()
	assert.Equal(t, uint8(0xff), img.AlphaAt(70, 1).A)
	assert.Equal(t, uint8(0), img.AlphaAt(69, 1).A)
}

func TestObstacleCollidesWithShapedActor(t *testing.T) {
	actor, err := NewCircleMask(10)
	require.NoError(t, err)
	box := rectObstacle(t, 100, 100, 50, 50)

	// actor's bounding-box corner overlaps but its disc does not
	assert.False(t, box.CollidesWith(common.Rect{X: 82, Y: 82, Width: 20, Height: 20}, actor))
	assert.True(t, box.CollidesWith(common.Rect{X: 95, Y: 95, Width: 20, Height: 20}, actor))

	disc, err := NewCircleObstacle(200, 200, 10, nil)
	require.NoError(t, err)
	assert.True(t, disc.CollidesWith(common.Rect{X: 195, Y: 195, Width: 20, Height: 20}, actor))
	assert.False(t, disc.CollidesWith(common.Rect{X: 206, Y: 206, Width: 20, Height: 20}, actor))
}

func TestObstacleTickFollowsPath(t *testing.T) {
	path, err := NewVelocityPath([]PathStep{
		{Velocity: cp.Vector{X: 100}, Duration: 0.5},
		{Velocity: cp.Vector{X: -100}, Duration: 0.5},
	})
	require.NoError(t, err)
	o, err := NewRectObstacle(0, 50, 20, 20, path)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		o.Tick(tickDT)
	}
	assert.Equal(t, 50.0, o.X)
	assert.Equal(t, 50.0, o.Y)
	assert.True(t, o.Moving())
	assert.Equal(t, 1, path.Index())

	for i := 0; i < 32; i++ {
		o.Tick(tickDT)
	}
	assert.Equal(t, 0.0, o.X)
	assert.Equal(t, cp.Vector{X: -100 * tickDT}, o.Delta())
}

func TestStaticObstacleTick(t *testing.T) {
	o := rectObstacle(t, 5, 5, 10, 10)
	o.Tick(tickDT)
	assert.False(t, o.Moving())
	x, y := o.TopLeft()
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 5.0, y)
	assert.Equal(t, common.Rect{X: -5, Y: 0, Width: 10, Height: 10}, o.ScreenRect(10, 5))
}

func (m *Mask) rowCount(y int) int {
	n := 0
	for wi := 0; wi < m.stride; wi++ {
		n += bits.OnesCount64(m.words[y*m.stride+wi])
	}
	return n
}
