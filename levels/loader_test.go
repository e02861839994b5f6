package levels

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, opaque func(x, y int) bool) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if opaque(x, y) {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T, level string) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"test.yaml":        {Data: []byte(level)},
		"images/block.png": {Data: pngBytes(t, 16, 8, func(x, y int) bool { return y >= 4 })},
		"images/empty.png": {Data: pngBytes(t, 4, 4, func(x, y int) bool { return false })},
		"scripts/up.tengo": {Data: []byte(`path := [{vy: -h, duration: 1}, {vy: h, duration: 1}]`)},
	}
}

const testLevel = `
name: sandbox
spawn: {x: 40, y: 60}
obstacles:
  - {x: 0, y: 200, w: 400, h: 20}
  - {shape: circle, x: 300, y: 150, radius: 10}
  - {shape: image, x: 100, y: 192, image: images/block.png}
  - {x: 200, y: 180, w: 30, h: 10, script: scripts/up.tengo}
  - {x: 250, y: 100, w: 30, h: 10, path: [{vx: 10, duration: 1}, {vx: -10, duration: 1}]}
kill_zones:
  - {x: 0, y: 400, w: 400, h: 20}
portals:
  - a: {x: 380, y: 100, w: 10, h: 40}
    b: {x: 10, y: 100, w: 10, h: 40}
`

func TestLoad(t *testing.T) {
	stage, err := Load(context.Background(), testFS(t, testLevel), "test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "sandbox", stage.Name)
	assert.Equal(t, cp.Vector{X: 40, Y: 60}, stage.Spawn)
	require.Len(t, stage.Obstacles, 5)
	require.Len(t, stage.KillZones, 1)
	require.Len(t, stage.Portals, 1)

	assert.Equal(t, obj.ShapeCircle, stage.Obstacles[1].Kind())

	block := stage.Obstacles[2]
	assert.Equal(t, obj.ShapeMask, block.Kind())
	assert.Equal(t, 64, block.Mask().Count())
	w, h := block.Mask().Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)

	scripted := stage.Obstacles[3]
	require.NotNil(t, scripted.Path())
	assert.Equal(t, cp.Vector{Y: -10}, scripted.Path().Velocity())

	assert.Len(t, stage.Obstacles[4].Path().Steps(), 2)
	assert.Nil(t, stage.Obstacles[0].Path())
}

func TestStageBounds(t *testing.T) {
	stage, err := Load(context.Background(), testFS(t, testLevel), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, common.Rect{X: 0, Y: 100, Width: 400, Height: 320}, stage.Bounds())

	assert.True(t, (&Stage{}).Bounds().Empty())
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name  string
		level string
		want  error
	}{
		{"degenerate_rect", "obstacles: [{x: 0, y: 0, w: 0, h: 5}]", obj.ErrDegenerateShape},
		{"empty_image", "obstacles: [{shape: image, image: images/empty.png}]", obj.ErrDegenerateShape},
		{"missing_image", "obstacles: [{shape: image, image: images/nope.png}]", fs.ErrNotExist},
		{"missing_script", "obstacles: [{w: 1, h: 1, script: scripts/nope.tengo}]", fs.ErrNotExist},
		{"bad_path", "obstacles: [{w: 1, h: 1, path: [{vx: 1, duration: 0}]}]", obj.ErrInvalidPath},
		{"portal_mismatch", "portals: [{a: {w: 10, h: 40}, b: {w: 10, h: 30}}]", obj.ErrPortalMismatch},
		{"degenerate_kill_zone", "kill_zones: [{w: 10}]", obj.ErrDegenerateShape},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(context.Background(), testFS(t, c.level), "test.yaml")
			require.ErrorIs(t, err, c.want)
			assert.Contains(t, err.Error(), "levels:")
		})
	}
}

func TestLoadMissingLevel(t *testing.T) {
	_, err := Load(context.Background(), fstest.MapFS{}, "missing.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, testFS(t, testLevel), "test.yaml")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStageWorld(t *testing.T) {
	stage, err := Load(context.Background(), testFS(t, testLevel), "test.yaml")
	require.NoError(t, err)

	player, err := obj.NewPlayer(obj.DefaultPlayerConfig())
	require.NoError(t, err)
	w, err := stage.World(player)
	require.NoError(t, err)

	assert.Equal(t, 40.0, player.X)
	assert.Equal(t, 60.0, player.Y)
	assert.Equal(t, 40.0, player.Config().SpawnX)
	assert.Len(t, w.Obstacles(), 5)
	for _, o := range w.Obstacles() {
		got, ok := w.Obstacle(o.Handle())
		require.True(t, ok)
		assert.Same(t, o, got)
	}

	var landed bool
	for i := 0; i < 120 && !landed; i++ {
		landed = w.Tick(1.0 / 64).Has(obj.ContactFloor)
	}
	assert.True(t, landed)
}

func TestEmbeddedLevelsLoad(t *testing.T) {
	names, err := fs.Glob(LevelsFS, "*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			stage, err := Load(context.Background(), LevelsFS, name)
			require.NoError(t, err)
			assert.NotEmpty(t, stage.Obstacles)

			player, err := obj.NewPlayer(obj.DefaultPlayerConfig())
			require.NoError(t, err)
			w, err := stage.World(player)
			require.NoError(t, err)

			// spawn must be a free position
			for _, o := range w.Obstacles() {
				assert.False(t, o.CollidesWith(player.Rect(), nil), "spawn overlaps %s obstacle", o.Kind())
			}
			assert.False(t, obj.AnyKillZone(w.KillZones(), player.Rect()))
		})
	}
}
