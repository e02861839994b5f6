package render

import (
	"image/color"

	"github.com/milk9111/platformer/prefabs"
	"golang.org/x/image/colornames"
)

// Palette holds the colours used for every kind of shape.
type Palette struct {
	Background color.Color
	Player     color.Color
	Dashing    color.Color
	Obstacle   color.Color
	Moving     color.Color
	KillZone   color.Color
	Portal     color.Color
	Text       color.Color
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 27, G: 29, B: 36, A: 255},
		Player:     colornames.Cornflowerblue,
		Dashing:    colornames.Gold,
		Obstacle:   colornames.Slategray,
		Moving:     colornames.Mediumseagreen,
		KillZone:   colornames.Crimson,
		Portal:     colornames.Mediumpurple,
		Text:       colornames.White,
	}
}

// PaletteFromTheme fills any colour missing from spec with the default.
func PaletteFromTheme(spec *prefabs.ThemeSpec) Palette {
	p := DefaultPalette()
	if spec == nil {
		return p
	}
	return Palette{
		Background: spec.Background.Or(p.Background),
		Player:     spec.Player.Or(p.Player),
		Dashing:    spec.Dashing.Or(p.Dashing),
		Obstacle:   spec.Obstacle.Or(p.Obstacle),
		Moving:     spec.Moving.Or(p.Moving),
		KillZone:   spec.KillZone.Or(p.KillZone),
		Portal:     spec.Portal.Or(p.Portal),
		Text:       spec.Text.Or(p.Text),
	}
}
