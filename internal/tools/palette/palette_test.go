package palette

import (
	"strings"
	"testing"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

func mustParse(t *testing.T, s string) Formats {
	t.Helper()
	c, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return Describe(c)
}

func TestDescribe(t *testing.T) {
	got := mustParse(t, "#6366f1")
	want := Formats{
		Hex:  "#6366F1",
		RGB:  "rgb(99, 102, 241)",
		HSL:  "hsl(239, 84%, 67%)",
		CMYK: "cmyk(59%, 58%, 0%, 5%)",
		CSS:  "--color: #6366f1;",
	}
	if got != want {
		t.Errorf("got  %+v\nwant %+v", got, want)
	}
}

func TestParse_Forms(t *testing.T) {
	for _, in := range []string{"ff0000", "#f00", " #FF0000 "} {
		if got := mustParse(t, in).Hex; got != "#FF0000" {
			t.Errorf("%q: got %s", in, got)
		}
	}
	for _, in := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		if _, err := Parse(in); apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("Parse(%q) = %v, want validation error", in, err)
		}
	}
}

func TestDescribe_Black(t *testing.T) {
	if got := mustParse(t, "#000").CMYK; got != "cmyk(0%, 0%, 0%, 100%)" {
		t.Errorf("cmyk: %s", got)
	}
}

func TestShades(t *testing.T) {
	c, _ := Parse("#000000")
	shades := Shades(c)
	if len(shades) != len(ShadeSteps) {
		t.Fatalf("got %d shades", len(shades))
	}
	if shades[2] != "#808080" {
		t.Errorf("50%% tint of black: %s", shades[2])
	}
	if shades[5] != "#000000" {
		t.Errorf("unchanged step: %s", shades[5])
	}

	w, _ := Parse("#ffffff")
	if got := Shades(w)[9]; got != "#999999" {
		t.Errorf("40%% shade of white: %s", got)
	}
}

func TestGradient_CSS(t *testing.T) {
	g := Gradient{Angle: 135, Stops: []Stop{{"#A855F7", 100}, {"#6366f1", 0}}}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := g.CSS(); got != "linear-gradient(135deg, #6366f1 0%, #a855f7 100%)" {
		t.Errorf("linear: %s", got)
	}
	g.Kind = Radial
	if got := g.CSS(); got != "radial-gradient(circle, #6366f1 0%, #a855f7 100%)" {
		t.Errorf("radial: %s", got)
	}
}

func TestGradient_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		g    Gradient
		want string
	}{
		{"one stop", Gradient{Stops: []Stop{{"#fff", 0}}}, "2 to 5"},
		{"six stops", Gradient{Stops: make([]Stop, 6)}, "2 to 5"},
		{"bad kind", Gradient{Kind: "conic", Stops: DefaultStops}, "linear or radial"},
		{"bad pos", Gradient{Stops: []Stop{{"#fff", 0}, {"#000", 120}}}, "between 0 and 100"},
		{"bad color", Gradient{Stops: []Stop{{"#fff", 0}, {"nope", 100}}}, "Invalid color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if !strings.Contains(apperr.UserMessage(err), tt.want) {
				t.Errorf("got %v, want message containing %q", err, tt.want)
			}
		})
	}
}

func TestGradient_AngleNormalised(t *testing.T) {
	g := Gradient{Angle: -90, Stops: []Stop{{"#fff", 0}, {"#000", 100}}}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if g.Angle != 270 {
		t.Errorf("angle: %d", g.Angle)
	}
}

func TestGradient_Reverse(t *testing.T) {
	g := Gradient{Stops: []Stop{{"#ff0000", 0}, {"#00ff00", 30}, {"#0000ff", 100}}}
	r := g.Reverse()
	want := []Stop{{"#0000ff", 0}, {"#00ff00", 30}, {"#ff0000", 100}}
	for i := range want {
		if r.Stops[i] != want[i] {
			t.Errorf("stop %d: got %+v, want %+v", i, r.Stops[i], want[i])
		}
	}
	if g.Stops[0].Color != "#ff0000" {
		t.Error("Reverse modified the receiver")
	}
}

func TestGradient_SampleEndpoints(t *testing.T) {
	g := Gradient{Stops: []Stop{{"#000000", 0}, {"#ffffff", 100}}}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	s := g.Sample(5)
	if len(s) != 5 || s[0] != "#000000" || s[4] != "#ffffff" {
		t.Errorf("samples: %v", s)
	}
}

func TestParseStops(t *testing.T) {
	stops, err := ParseStops("#fff, #888 40%, #000")
	if err != nil {
		t.Fatal(err)
	}
	want := []Stop{{"#fff", 0}, {"#888", 40}, {"#000", 100}}
	if len(stops) != len(want) {
		t.Fatalf("got %+v", stops)
	}
	for i := range want {
		if stops[i] != want[i] {
			t.Errorf("stop %d: got %+v, want %+v", i, stops[i], want[i])
		}
	}
	if _, err := ParseStops("#fff 1 2"); err == nil {
		t.Error("expected error for three fields")
	}
	if _, err := ParseStops("#fff x"); err == nil {
		t.Error("expected error for a non-numeric position")
	}
}

func TestTokens(t *testing.T) {
	base, _ := Parse(DefaultBase)
	if got := HSLTriplet(base); got != "263.4 70% 50.4%" {
		t.Fatalf("triplet: %s", got)
	}

	dark := TokensCSS(Tokens(base, Dark), Dark)
	for _, want := range []string{".dark {", "  --primary: 263.4 70% 50.4%;", "  --ring: 263.4 70% 50.4%;", "  --primary-foreground: 0 0% 100%;", "  --background: 240 10% 3.9%;", "  --radius: 0.5rem;"} {
		if !strings.Contains(dark, want) {
			t.Errorf("dark css missing %q:\n%s", want, dark)
		}
	}

	white, _ := Parse("#ffffff")
	light := TokensCSS(Tokens(white, "sepia"), "sepia")
	if !strings.HasPrefix(light, ":root {") || !strings.Contains(light, "--primary-foreground: 240 10% 3.9%;") {
		t.Errorf("light css for a pale base:\n%s", light)
	}
}
