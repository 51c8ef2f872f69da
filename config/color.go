package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is a "#rrggbb" or "#rrggbbaa" colour.
type Color struct {
	colorful.Color
	Alpha float64
}

// ParseColor parses a hex colour with an optional alpha byte.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := 1.0
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color format: %s", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	default:
		return Color{}, fmt.Errorf("invalid color format: %s", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{Color: c, Alpha: alpha}, nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NRGBA returns the colour with its alpha, falling back to fallback when c
// is nil.
func (c *Color) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c == nil {
		return fallback
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(c.Alpha*255 + 0.5)}
}
