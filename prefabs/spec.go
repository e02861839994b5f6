package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CameraSpec tunes how the camera follows the player.
type CameraSpec struct {
	Smoothness float64 `yaml:"smoothness"`
	LookAhead  float64 `yaml:"look_ahead"`
	// Thirds keeps the player inside the middle third of the screen instead
	// of centring it.
	Thirds bool `yaml:"thirds"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Smoothness < 0 || spec.Smoothness > 1 {
		return nil, fmt.Errorf("prefabs: camera.yaml: smoothness %v outside [0, 1]", spec.Smoothness)
	}
	return &spec, nil
}

// ThemeSpec is the debug renderer's palette.
type ThemeSpec struct {
	Background YAMLColor `yaml:"background"`
	Player     YAMLColor `yaml:"player"`
	Dashing    YAMLColor `yaml:"dashing"`
	Obstacle   YAMLColor `yaml:"obstacle"`
	Moving     YAMLColor `yaml:"moving"`
	KillZone   YAMLColor `yaml:"kill_zone"`
	Portal     YAMLColor `yaml:"portal"`
	Text       YAMLColor `yaml:"text"`
}

func LoadThemeSpec() (*ThemeSpec, error) {
	spec, err := LoadSpec[ThemeSpec]("theme.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name such as
// "crimson".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c, or fallback when c was never set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
