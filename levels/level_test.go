package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
name: test
spawn: {x: 10, y: 20}
obstacles:
  - {x: 0, y: 100, w: 50, h: 10}
  - {shape: circle, x: 100, y: 100, radius: 8}
  - {shape: image, x: 0, y: 0, image: a.png}
  - {shape: image, x: 50, y: 0, image: a.png}
kill_zones:
  - {x: 1, y: 2, w: 3, h: 4, path: [{vx: 1, duration: 2}]}
portals:
  - a: {x: 0, y: 0, w: 10, h: 40}
    b: {x: 90, y: 0, w: 10, h: 40}
`)
	lvl, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "test", lvl.Name)
	assert.Equal(t, Point{X: 10, Y: 20}, lvl.Spawn)
	require.Len(t, lvl.Obstacles, 4)
	assert.Equal(t, ShapeRect, lvl.Obstacles[0].Shape, "shape defaults to rect")
	assert.Equal(t, 8.0, lvl.Obstacles[1].Radius)
	assert.Equal(t, []string{"a.png"}, lvl.Images())

	require.Len(t, lvl.KillZones, 1)
	assert.Equal(t, RectDef{X: 1, Y: 2, W: 3, H: 4}, lvl.KillZones[0].RectDef)
	assert.Equal(t, []StepDef{{VX: 1, Duration: 2}}, lvl.KillZones[0].Path)

	require.Len(t, lvl.Portals, 1)
	assert.Equal(t, 90.0, lvl.Portals[0].B.X)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
		msg  string
	}{
		{"unknown_shape", "obstacles: [{shape: hexagon}]", "unknown shape"},
		{"image_without_file", "obstacles: [{shape: image}]", "without image"},
		{"path_and_script", "obstacles: [{w: 1, h: 1, script: a.tengo, path: [{vx: 1, duration: 1}]}]", "both path and script"},
		{"kill_zone_path_and_script", "kill_zones: [{w: 1, h: 1, script: a.tengo, path: [{vx: 1, duration: 1}]}]", "both path and script"},
		{"bad_yaml", "obstacles: {", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}
