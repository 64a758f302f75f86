package resize

import (
	"math"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// Dimensions tracks the target size of a resize relative to the source.
// With Locked set, changing one side recomputes the other from the
// source aspect ratio.
type Dimensions struct {
	OrigWidth  int
	OrigHeight int
	Width      int
	Height     int
	Locked     bool
}

// NewDimensions starts at the source size with the aspect ratio locked.
func NewDimensions(w, h int) Dimensions {
	return Dimensions{OrigWidth: w, OrigHeight: h, Width: w, Height: h, Locked: true}
}

// SetWidth sets the target width.
func (d *Dimensions) SetWidth(w int) {
	d.Width = w
	if d.Locked && d.OrigWidth > 0 {
		d.Height = int(math.Round(float64(w) * float64(d.OrigHeight) / float64(d.OrigWidth)))
	}
}

// SetHeight sets the target height.
func (d *Dimensions) SetHeight(h int) {
	d.Height = h
	if d.Locked && d.OrigHeight > 0 {
		d.Width = int(math.Round(float64(h) * float64(d.OrigWidth) / float64(d.OrigHeight)))
	}
}

// ApplyPreset uses the preset width only when locked, both sides
// otherwise.
func (d *Dimensions) ApplyPreset(p Preset) {
	if d.Locked {
		d.SetWidth(p.Width)
		return
	}
	d.Width, d.Height = p.Width, p.Height
}

// Megapixels of the target size.
func (d Dimensions) Megapixels() float64 {
	return float64(d.Width) * float64(d.Height) / 1e6
}

// Canvas returns the output size after rotation: quarter turns swap
// width and height.
func (d Dimensions) Canvas(rotation int) (w, h int) {
	if NormalizeRotation(rotation)%180 != 0 {
		return d.Height, d.Width
	}
	return d.Width, d.Height
}

// NormalizeRotation maps any multiple of 90 into [0, 360).
func NormalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

// Target is a resize as the user states it. Any field may be zero.
type Target struct {
	Preset   string
	Width    int
	Height   int
	Unlocked bool
}

// Plan resolves t against a source of origW×origH. A preset applies
// first; giving both sides turns the aspect lock off.
func Plan(origW, origH int, t Target) (Dimensions, error) {
	d := NewDimensions(origW, origH)
	d.Locked = !t.Unlocked && (t.Width <= 0 || t.Height <= 0)
	if t.Preset != "" {
		p, ok := GetPreset(t.Preset)
		if !ok {
			return d, apperr.Validationf("Unknown preset %q.", t.Preset)
		}
		d.ApplyPreset(p)
	}
	if t.Width > 0 {
		d.SetWidth(t.Width)
	}
	if t.Height > 0 && (t.Width <= 0 || !d.Locked) {
		d.SetHeight(t.Height)
	}
	return d, nil
}
