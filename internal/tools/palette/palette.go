// Package palette backs the color tools: format conversion and shades
// for the picker, CSS gradients, and shadcn/ui theme tokens.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// Parse reads a hex color, with or without the leading '#', in the long
// (#rrggbb) or short (#rgb) form.
func Parse(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil || (len(s) != 4 && len(s) != 7) {
		return colorful.Color{}, apperr.Validationf("Invalid color %q. Use a hex value like #6366f1.", strings.TrimPrefix(s, "#"))
	}
	return c, nil
}

// Formats is one color in every notation the picker shows.
type Formats struct {
	Hex  string `json:"hex"`
	RGB  string `json:"rgb"`
	HSL  string `json:"hsl"`
	CMYK string `json:"cmyk"`
	CSS  string `json:"css"`
}

// Describe renders c in each notation. Channels are rounded to the
// nearest integer.
func Describe(c colorful.Color) Formats {
	r, g, b := c.Clamped().RGB255()
	h, s, l := c.Hsl()
	hex := strings.ToUpper(c.Clamped().Hex())
	return Formats{
		Hex:  hex,
		RGB:  fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		HSL:  fmt.Sprintf("hsl(%d, %d%%, %d%%)", round(h), round(s*100), round(l*100)),
		CMYK: cmyk(r, g, b),
		CSS:  fmt.Sprintf("--color: %s;", strings.ToLower(hex)),
	}
}

func cmyk(r, g, b uint8) string {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	k := 1 - math.Max(rf, math.Max(gf, bf))
	if k == 1 {
		return "cmyk(0%, 0%, 0%, 100%)"
	}
	c := (1 - rf - k) / (1 - k)
	m := (1 - gf - k) / (1 - k)
	y := (1 - bf - k) / (1 - k)
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", round(c*100), round(m*100), round(y*100), round(k*100))
}

// ShadeSteps are the picker's tint (positive, towards white) and shade
// (negative, towards black) amounts, lightest first.
var ShadeSteps = []float64{0.9, 0.7, 0.5, 0.3, 0.1, 0, -0.1, -0.2, -0.3, -0.4}

// Shades returns c mixed towards white or black by each of ShadeSteps.
func Shades(c colorful.Color) []string {
	out := make([]string, len(ShadeSteps))
	for i, step := range ShadeSteps {
		mixed := c
		switch {
		case step > 0:
			mixed = c.BlendRgb(white, step)
		case step < 0:
			mixed = c.BlendRgb(black, -step)
		}
		out[i] = mixed.Clamped().Hex()
	}
	return out
}

// Random returns a random, reasonably saturated color.
func Random() colorful.Color {
	return colorful.HappyColor()
}

func round(f float64) int { return int(math.Round(f)) }
