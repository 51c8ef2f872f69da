package plot

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Palette holds the colours of every chart element.
type Palette struct {
	F          color.NRGBA
	G          color.NRGBA
	Conv       color.NRGBA
	Area       color.NRGBA
	Background color.NRGBA
	Axis       color.NRGBA
	Grid       color.NRGBA
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// DefaultPalette mirrors matplotlib's red/blue/black/purple demo colours.
func DefaultPalette() Palette {
	area := nrgba(colornames.Purple)
	area.A = 0xb3
	return Palette{
		F:          nrgba(colornames.Red),
		G:          nrgba(colornames.Blue),
		Conv:       nrgba(colornames.Black),
		Area:       area,
		Background: nrgba(colornames.White),
		Axis:       nrgba(colornames.Darkslategray),
		Grid:       nrgba(colornames.Gainsboro),
	}
}

// Fade blends c towards the background by t in CIE L*a*b*, keeping c's
// alpha.
func (p Palette) Fade(c color.NRGBA, t float64) color.NRGBA {
	from, _ := colorful.MakeColor(opaque(c))
	to, _ := colorful.MakeColor(opaque(p.Background))
	r, g, b := from.BlendLab(to, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}
