package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Level is the on-disk description of a stage.
type Level struct {
	Name      string        `yaml:"name"`
	Spawn     Point         `yaml:"spawn"`
	Obstacles []ObstacleDef `yaml:"obstacles"`
	KillZones []KillZoneDef `yaml:"kill_zones"`
	Portals   []PortalDef   `yaml:"portals"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// StepDef is one entry of a velocity path.
type StepDef struct {
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	Duration float64 `yaml:"duration"`
}

// ObstacleDef describes a solid. Shape is "rect" (x, y, w, h), "circle"
// (x, y as centre, radius) or "image" (x, y, image). Motion comes from
// either an inline path or a tengo script that computes one.
type ObstacleDef struct {
	Shape  string    `yaml:"shape"`
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
	W      float64   `yaml:"w"`
	H      float64   `yaml:"h"`
	Radius float64   `yaml:"radius"`
	Image  string    `yaml:"image"`
	Path   []StepDef `yaml:"path"`
	Script string    `yaml:"script"`
}

type KillZoneDef struct {
	RectDef `yaml:",inline"`
	Path    []StepDef `yaml:"path"`
	Script  string    `yaml:"script"`
}

type PortalDef struct {
	A RectDef `yaml:"a"`
	B RectDef `yaml:"b"`
}

const (
	ShapeRect   = "rect"
	ShapeCircle = "circle"
	ShapeImage  = "image"
)

// Parse decodes a level file. Missing shapes default to rect.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, err
	}
	for i := range lvl.Obstacles {
		o := &lvl.Obstacles[i]
		if o.Shape == "" {
			o.Shape = ShapeRect
		}
		switch o.Shape {
		case ShapeRect, ShapeCircle:
		case ShapeImage:
			if o.Image == "" {
				return nil, fmt.Errorf("obstacle %d: image shape without image", i)
			}
		default:
			return nil, fmt.Errorf("obstacle %d: unknown shape %q", i, o.Shape)
		}
		if len(o.Path) > 0 && o.Script != "" {
			return nil, fmt.Errorf("obstacle %d: both path and script set", i)
		}
	}
	for i, k := range lvl.KillZones {
		if len(k.Path) > 0 && k.Script != "" {
			return nil, fmt.Errorf("kill zone %d: both path and script set", i)
		}
	}
	return &lvl, nil
}

// Images returns the distinct image paths referenced by the level in
// first-use order.
func (l *Level) Images() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range l.Obstacles {
		if o.Shape != ShapeImage || seen[o.Image] {
			continue
		}
		seen[o.Image] = true
		out = append(out, o.Image)
	}
	return out
}
