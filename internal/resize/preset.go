package resize

// Preset is a named target size.
type Preset struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Built-in presets.
var presets = map[string]Preset{
	"fhd": {
		Name:   "fhd",
		Label:  "1080p Full HD",
		Width:  1920,
		Height: 1080,
	},
	"insta-post": {
		Name:   "insta-post",
		Label:  "Insta Post",
		Width:  1080,
		Height: 1080,
	},
	"insta-story": {
		Name:   "insta-story",
		Label:  "Insta Story",
		Width:  1080,
		Height: 1920,
	},
	"og": {
		Name:   "og",
		Label:  "OG Image",
		Width:  1200,
		Height: 630,
	},
}

// presetOrder is the display order.
var presetOrder = []string{"fhd", "insta-post", "insta-story", "og"}

// GetPreset returns a preset by name.
func GetPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Presets lists every preset in display order.
func Presets() []Preset {
	out := make([]Preset, 0, len(presetOrder))
	for _, name := range presetOrder {
		out = append(out, presets[name])
	}
	return out
}
