package levels

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPathScript(t *testing.T) {
	bounds := common.Rect{X: 10, Y: 20, Width: 40, Height: 8}
	cases := []struct {
		name string
		src  string
		want []obj.PathStep
	}{
		{
			"literal",
			`path := [{vx: 1, vy: 2, duration: 3}]`,
			[]obj.PathStep{{Velocity: cp.Vector{X: 1, Y: 2}, Duration: 3}},
		},
		{
			"uses_bounds",
			`path := [{vx: w, duration: h / 4}, {vx: -w, vy: y, duration: 2}]`,
			[]obj.PathStep{
				{Velocity: cp.Vector{X: 40}, Duration: 2},
				{Velocity: cp.Vector{X: -40, Y: 20}, Duration: 2},
			},
		},
		{
			"math_module",
			"math := import(\"math\")\npath := [{vy: math.abs(-x), duration: 1}]",
			[]obj.PathStep{{Velocity: cp.Vector{Y: 10}, Duration: 1}},
		},
		{
			"immutable",
			`path := immutable([{vx: 5, duration: 0.5}])`,
			[]obj.PathStep{{Velocity: cp.Vector{X: 5}, Duration: 0.5}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := RunPathScript([]byte(c.src), bounds)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRunPathScriptErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `path := [`},
		{"runtime", `path := [1][5]`},
		{"undefined", `speed := 4`},
		{"not_array", `path := 3`},
		{"not_map", `path := [3]`},
		{"missing_duration", `path := [{vx: 1}]`},
		{"string_field", `path := [{vx: "fast", duration: 1}]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := RunPathScript([]byte(c.src), common.Rect{Width: 1, Height: 1})
			require.ErrorIs(t, err, ErrScript)
		})
	}
}

func TestEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"scripts/elevator.tengo", "scripts/shuttle.tengo"} {
		t.Run(name, func(t *testing.T) {
			src, err := LevelsFS.ReadFile(name)
			require.NoError(t, err)
			steps, err := RunPathScript(src, common.Rect{X: 0, Y: 0, Width: 40, Height: 20})
			require.NoError(t, err)

			path, err := obj.NewVelocityPath(steps)
			require.NoError(t, err)

			// every embedded path is a closed loop
			var total cp.Vector
			for _, s := range path.Steps() {
				total = total.Add(s.Velocity.Mult(s.Duration))
			}
			assert.InDelta(t, 0, total.X, 1e-9)
			assert.InDelta(t, 0, total.Y, 1e-9)
		})
	}
}
