package palette

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient kinds.
const (
	Linear = "linear"
	Radial = "radial"
)

// Stop limits for one gradient.
const (
	MinStops = 2
	MaxStops = 5
)

// DefaultAngle is the linear gradient direction in degrees.
const DefaultAngle = 135

// Stop is one color stop; Pos is a percentage.
type Stop struct {
	Color string `json:"color"`
	Pos   int    `json:"pos"`
}

// Gradient describes a CSS background gradient.
type Gradient struct {
	Kind  string `json:"kind"`
	Angle int    `json:"angle"`
	Stops []Stop `json:"stops"`
}

// DefaultStops is the indigo to purple starting gradient.
var DefaultStops = []Stop{{Color: "#6366f1", Pos: 0}, {Color: "#a855f7", Pos: 100}}

// ParseStops reads "color [pos], color [pos], ...". Stops without a
// position are spread evenly across 0-100.
func ParseStops(s string) ([]Stop, error) {
	parts := strings.Split(s, ",")
	stops := make([]Stop, 0, len(parts))
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return nil, apperr.Validationf("Invalid stop %q. Use \"#hex 50\".", strings.TrimSpace(part))
		}
		stop := Stop{Color: fields[0], Pos: -1}
		if len(fields) == 2 {
			pos, err := strconv.Atoi(strings.TrimSuffix(fields[1], "%"))
			if err != nil {
				return nil, apperr.Validationf("Invalid position %q in stop %d.", fields[1], i+1)
			}
			stop.Pos = pos
		}
		stops = append(stops, stop)
	}
	n := len(stops)
	for i := range stops {
		if stops[i].Pos < 0 {
			if n > 1 {
				stops[i].Pos = i * 100 / (n - 1)
			} else {
				stops[i].Pos = 0
			}
		}
	}
	return stops, nil
}

// Validate checks the stop count, colors and positions and normalises
// kind, colors and stop order.
func (g *Gradient) Validate() error {
	switch strings.ToLower(g.Kind) {
	case "", Linear:
		g.Kind = Linear
	case Radial:
		g.Kind = Radial
	default:
		return apperr.Validationf("Unknown gradient type %q (use linear or radial).", g.Kind)
	}
	if len(g.Stops) < MinStops || len(g.Stops) > MaxStops {
		return apperr.Validationf("A gradient needs %d to %d color stops, got %d.", MinStops, MaxStops, len(g.Stops))
	}
	for i := range g.Stops {
		c, err := Parse(g.Stops[i].Color)
		if err != nil {
			return err
		}
		if g.Stops[i].Pos < 0 || g.Stops[i].Pos > 100 {
			return apperr.Validationf("Stop positions must be between 0 and 100, got %d.", g.Stops[i].Pos)
		}
		g.Stops[i].Color = c.Hex()
	}
	sort.SliceStable(g.Stops, func(i, j int) bool { return g.Stops[i].Pos < g.Stops[j].Pos })
	g.Angle = ((g.Angle % 360) + 360) % 360
	return nil
}

// CSS renders the gradient value, e.g.
// "linear-gradient(135deg, #6366f1 0%, #a855f7 100%)".
func (g Gradient) CSS() string {
	parts := make([]string, len(g.Stops))
	for i, s := range g.Stops {
		parts[i] = fmt.Sprintf("%s %d%%", s.Color, s.Pos)
	}
	stops := strings.Join(parts, ", ")
	if g.Kind == Radial {
		return "radial-gradient(circle, " + stops + ")"
	}
	return fmt.Sprintf("linear-gradient(%ddeg, %s)", g.Angle, stops)
}

// Reverse flips the colors while keeping the positions in place.
func (g Gradient) Reverse() Gradient {
	out := g
	out.Stops = make([]Stop, len(g.Stops))
	for i := range g.Stops {
		out.Stops[i] = Stop{Color: g.Stops[len(g.Stops)-1-i].Color, Pos: g.Stops[i].Pos}
	}
	return out
}

// Sample interpolates n evenly spaced colors along the gradient in Lab
// space. g must be valid.
func (g Gradient) Sample(n int) []string {
	if n < 2 {
		n = 2
	}
	colors := make([]colorful.Color, len(g.Stops))
	for i, s := range g.Stops {
		colors[i], _ = Parse(s.Color)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		pos := float64(i) * 100 / float64(n-1)
		out[i] = g.at(colors, pos).Clamped().Hex()
	}
	return out
}

func (g Gradient) at(colors []colorful.Color, pos float64) colorful.Color {
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if pos <= float64(first.Pos) {
		return colors[0]
	}
	if pos >= float64(last.Pos) {
		return colors[len(colors)-1]
	}
	for i := 1; i < len(g.Stops); i++ {
		lo, hi := g.Stops[i-1], g.Stops[i]
		if pos > float64(hi.Pos) {
			continue
		}
		span := float64(hi.Pos - lo.Pos)
		if span == 0 {
			return colors[i]
		}
		return colors[i-1].BlendLab(colors[i], (pos-float64(lo.Pos))/span)
	}
	return colors[len(colors)-1]
}
