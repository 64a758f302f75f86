package palette

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme modes.
const (
	Light = "light"
	Dark  = "dark"
)

// DefaultBase is the violet the token generator starts from.
const DefaultBase = "#6d28d9"

// Token is one CSS custom property, without the leading "--".
type Token struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// neutral palette shared by every base color, per mode.
var neutrals = map[string]map[string]string{
	Light: {
		"background":  "0 0% 100%",
		"foreground":  "240 10% 3.9%",
		"secondary":   "240 4.8% 95.9%",
		"muted-fg":    "240 3.8% 46.1%",
		"destructive": "0 84.2% 60.2%",
		"border":      "240 5.9% 90%",
	},
	Dark: {
		"background":  "240 10% 3.9%",
		"foreground":  "0 0% 98%",
		"secondary":   "240 3.7% 15.9%",
		"muted-fg":    "240 5% 64.9%",
		"destructive": "0 62.8% 30.6%",
		"border":      "240 3.7% 15.9%",
	},
}

// Tokens derives shadcn/ui theme variables from base. Primary and ring
// take the base color; the primary foreground is whichever of white or
// near-black reads better on it. Unknown modes are treated as light.
func Tokens(base colorful.Color, mode string) []Token {
	if mode != Dark {
		mode = Light
	}
	n := neutrals[mode]
	primary := HSLTriplet(base)
	primaryFg := "0 0% 100%"
	if luminance(base) > 0.45 {
		primaryFg = "240 10% 3.9%"
	}
	return []Token{
		{"background", n["background"]},
		{"foreground", n["foreground"]},
		{"card", n["background"]},
		{"card-foreground", n["foreground"]},
		{"popover", n["background"]},
		{"popover-foreground", n["foreground"]},
		{"primary", primary},
		{"primary-foreground", primaryFg},
		{"secondary", n["secondary"]},
		{"secondary-foreground", n["foreground"]},
		{"muted", n["secondary"]},
		{"muted-foreground", n["muted-fg"]},
		{"accent", n["secondary"]},
		{"accent-foreground", n["foreground"]},
		{"destructive", n["destructive"]},
		{"destructive-foreground", "0 0% 98%"},
		{"border", n["border"]},
		{"input", n["border"]},
		{"ring", primary},
		{"radius", "0.5rem"},
	}
}

// TokensCSS renders tokens inside the selector for mode: ":root" for
// light, ".dark" for dark.
func TokensCSS(tokens []Token, mode string) string {
	selector := ":root"
	if mode == Dark {
		selector = ".dark"
	}
	var b strings.Builder
	b.WriteString(selector + " {\n")
	for _, t := range tokens {
		fmt.Fprintf(&b, "  --%s: %s;\n", t.Name, t.Value)
	}
	b.WriteString("}")
	return b.String()
}

// HSLTriplet renders c the way shadcn/ui stores colors: "H S% L%" with
// one decimal place where needed.
func HSLTriplet(c colorful.Color) string {
	h, s, l := c.Clamped().Hsl()
	return decimal(h) + " " + decimal(s*100) + "% " + decimal(l*100) + "%"
}

func decimal(f float64) string {
	return strconv.FormatFloat(float64(round(f*10))/10, 'f', -1, 64)
}

// luminance is the WCAG relative luminance of c.
func luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
