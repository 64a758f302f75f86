package tools

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/tools/markdown"
	"github.com/AnyUserName/stylo-cli/internal/tools/netlookup"
	"github.com/AnyUserName/stylo-cli/internal/tools/palette"
)

// DefaultColor is the color picker's starting value.
const DefaultColor = "#6366f1"

// whois is shared by every whois-lookup run.
var whois = &netlookup.WhoisClient{}

// webTools are the design and web utilities: markdown, colors and
// domain lookups.
func webTools() []Tool {
	return []Tool{
		{ID: "markdown-html", Run: func(req Request) (Response, error) {
			out, err := markdown.ToHTML(req.Input, markdown.Options{
				RawHTML:    req.Bool("raw_html", false),
				HeadingIDs: req.Bool("heading_ids", false),
			})
			return Response{Output: out}, err
		}},
		actionTool("color-picker", map[string]Func{
			"describe": func(req Request) (Response, error) {
				c, err := palette.Parse(orDefault(req.Input, DefaultColor))
				if err != nil {
					return Response{}, err
				}
				return describeColor(palette.Describe(c), palette.Shades(c)), nil
			},
			"random": func(Request) (Response, error) {
				c := palette.Random()
				return describeColor(palette.Describe(c), palette.Shades(c)), nil
			},
		}, "describe", "random"),
		{ID: "gradient-generator", Run: func(req Request) (Response, error) {
			stops := palette.DefaultStops
			if spec := orDefault(req.Input, req.String("stops", "")); spec != "" {
				parsed, err := palette.ParseStops(spec)
				if err != nil {
					return Response{}, err
				}
				stops = parsed
			}
			g := palette.Gradient{
				Kind:  req.String("type", palette.Linear),
				Angle: req.Int("angle", palette.DefaultAngle),
				Stops: append([]palette.Stop(nil), stops...),
			}
			if err := g.Validate(); err != nil {
				return Response{}, err
			}
			if req.Bool("reverse", false) {
				g = g.Reverse()
			}
			css := g.CSS()
			return Response{
				Output: "background: " + css + ";",
				Data:   map[string]any{"gradient": g, "css": css, "samples": g.Sample(7)},
			}, nil
		}},
		{ID: "color-tokens", Run: func(req Request) (Response, error) {
			base, err := palette.Parse(orDefault(req.Input, palette.DefaultBase))
			if err != nil {
				return Response{}, err
			}
			mode := req.String("mode", palette.Light)
			tokens := palette.Tokens(base, mode)
			return Response{Output: palette.TokensCSS(tokens, mode), Data: tokens}, nil
		}},
		{ID: "whois-lookup", Run: func(req Request) (Response, error) {
			rec, err := whois.Lookup(req.Context(), req.Input)
			if err != nil {
				return Response{}, err
			}
			var b strings.Builder
			row := func(k, v string) {
				if v != "" {
					fmt.Fprintf(&b, "%-13s %s\n", k, v)
				}
			}
			row("Domain", rec.Domain)
			row("Registrar", rec.Registrar)
			row("Registrant", rec.Registrant)
			row("Created", rec.Created)
			row("Updated", rec.Updated)
			row("Expires", rec.Expires)
			row("Status", strings.Join(rec.Status, ", "))
			row("Name servers", strings.Join(rec.NameServers, ", "))
			row("Source", rec.Server)
			return Response{Output: strings.TrimSuffix(b.String(), "\n"), Data: rec}, nil
		}},
		{ID: "domain-ip", Run: func(req Request) (Response, error) {
			res, err := netlookup.Resolve(req.Context(), nil, req.Input)
			if err != nil {
				return Response{}, err
			}
			return Response{Output: strings.Join(append(res.IPv4, res.IPv6...), "\n"), Data: res}, nil
		}},
	}
}

func describeColor(f palette.Formats, shades []string) Response {
	return Response{
		Output: fmt.Sprintf("HEX   %s\nRGB   %s\nHSL   %s\nCMYK  %s\nCSS   %s", f.Hex, f.RGB, f.HSL, f.CMYK, f.CSS),
		Data:   map[string]any{"formats": f, "shades": shades},
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
