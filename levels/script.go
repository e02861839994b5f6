package levels

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
)

var ErrScript = errors.New("levels: path script")

// RunPathScript runs a tengo script that computes a velocity path. The
// script sees the owner's bounds as x, y, w and h and must define path as
// an array of {vx, vy, duration} maps.
func RunPathScript(src []byte, bounds common.Rect) ([]obj.PathStep, error) {
	script := tengo.NewScript(src)
	_ = script.Add("x", bounds.X)
	_ = script.Add("y", bounds.Y)
	_ = script.Add("w", bounds.Width)
	_ = script.Add("h", bounds.Height)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile: %v", ErrScript, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("%w: run: %v", ErrScript, err)
	}
	if !compiled.IsDefined("path") {
		return nil, fmt.Errorf("%w: path is not defined", ErrScript)
	}

	var items []tengo.Object
	switch v := compiled.Get("path").Object().(type) {
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	default:
		return nil, fmt.Errorf("%w: path must be an array, got %s", ErrScript, v.TypeName())
	}

	steps := make([]obj.PathStep, 0, len(items))
	for i, item := range items {
		var fields map[string]tengo.Object
		switch m := item.(type) {
		case *tengo.Map:
			fields = m.Value
		case *tengo.ImmutableMap:
			fields = m.Value
		default:
			return nil, fmt.Errorf("%w: step %d must be a map, got %s", ErrScript, i, item.TypeName())
		}
		vx, err := scriptNumber(fields, "vx", 0)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		vy, err := scriptNumber(fields, "vy", 0)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		d, err := scriptNumber(fields, "duration", -1)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, obj.PathStep{Velocity: cp.Vector{X: vx, Y: vy}, Duration: d})
	}
	return steps, nil
}

func scriptNumber(fields map[string]tengo.Object, key string, fallback float64) (float64, error) {
	o, ok := fields[key]
	if !ok {
		if fallback < 0 {
			return 0, fmt.Errorf("%w: missing %s", ErrScript, key)
		}
		return fallback, nil
	}
	switch o.(type) {
	case *tengo.Int, *tengo.Float:
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %s", ErrScript, key, o.TypeName())
	}
	v, _ := tengo.ToFloat64(o)
	return v, nil
}
