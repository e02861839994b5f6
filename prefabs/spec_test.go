package prefabs

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
	}{
		{`"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}},
		{`"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{`crimson`, colornames.Crimson},
		{`Gold`, colornames.Gold},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			require.NoError(t, yaml.Unmarshal([]byte(c.in), &got))
			assert.Equal(t, c.want, got.Color)
		})
	}
}

func TestYAMLColorRejects(t *testing.T) {
	for _, in := range []string{`"#12"`, `"#zzzzzz"`, `[1, 2]`, `notacolour`} {
		var got YAMLColor
		assert.Error(t, yaml.Unmarshal([]byte(in), &got), in)
	}
}

func TestYAMLColorOr(t *testing.T) {
	var unset YAMLColor
	assert.Equal(t, colornames.White, unset.Or(colornames.White))
	set := YAMLColor{Color: colornames.Red}
	assert.Equal(t, colornames.Red, set.Or(colornames.White))
}

func TestEmbeddedSpecs(t *testing.T) {
	theme, err := LoadThemeSpec()
	require.NoError(t, err)
	assert.Equal(t, colornames.Crimson, theme.KillZone.Color)
	assert.NotNil(t, theme.Background.Color)

	cam, err := LoadCameraSpec()
	require.NoError(t, err)
	assert.Greater(t, cam.Smoothness, 0.0)
}

func TestLoadSpecMissing(t *testing.T) {
	_, err := LoadSpec[CameraSpec]("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load nope.yaml")
}

func TestIs(t *testing.T) {
	assert.True(t, Is("/home/me/game/prefabs/player.yaml", PlayerFile))
	assert.True(t, Is("player.yaml", "prefabs/player.yaml"))
	assert.False(t, Is("/levels/player.yaml.bak", PlayerFile))
}
