package encode

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance is the relative luminance in [0, 1], used to pick label contrast.
func (c RGB) Luminance() float64 {
	r, g, b := toColorful(c).LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// MustHex parses a colour literal known to be valid.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Gradient linearly interpolates between two colours over a value domain.
type Gradient struct {
	Low, High RGB
	Min, Max  float64
}

// At returns the colour for v. A degenerate domain maps every value to High,
// so a single observed value never blends into the background.
func (g Gradient) At(v float64) RGB {
	if g.Max <= g.Min {
		return g.High
	}
	t := (v - g.Min) / (g.Max - g.Min)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return fromColorful(toColorful(g.Low).BlendRgb(toColorful(g.High), t))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
