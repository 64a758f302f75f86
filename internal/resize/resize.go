// Package resize scales, rotates and converts a single image.
package resize

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/disintegration/imaging"
)

// DefaultQuality is the resizer's initial quality for lossy formats.
const DefaultQuality = 92

// DefaultFormat is the resizer's initial output format.
const DefaultFormat = "png"

// Formats the resizer offers.
var Formats = []string{"png", "jpeg", "webp"}

// Options describes one resize.
type Options struct {
	Width    int
	Height   int
	Rotation int // degrees, multiple of 90, positive is clockwise
	Format   string
	Quality  int
}

// Output is a finished resize.
type Output struct {
	Data   []byte
	Width  int
	Height int
	Format string
	MIME   string
}

// Validate checks opts and fills defaults.
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return apperr.Validationf("Width and height must be positive, got %dx%d.", o.Width, o.Height)
	}
	if o.Rotation%90 != 0 {
		return apperr.Validationf("Rotation must be a multiple of 90 degrees, got %d.", o.Rotation)
	}
	o.Rotation = NormalizeRotation(o.Rotation)

	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	switch o.Format {
	case "":
		o.Format = DefaultFormat
	case "jpg":
		o.Format = "jpeg"
	case "png", "jpeg", "webp":
	default:
		return apperr.Validationf("Unsupported output format %q (use png, jpeg or webp).", o.Format)
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality
	}
	return nil
}

// Transform scales img to w×h with Lanczos and then rotates it clockwise.
func Transform(img image.Image, w, h, rotation int) image.Image {
	var out image.Image = imaging.Resize(img, w, h, imaging.Lanczos)
	switch NormalizeRotation(rotation) {
	case 90:
		out = imaging.Rotate270(out)
	case 180:
		out = imaging.Rotate180(out)
	case 270:
		out = imaging.Rotate90(out)
	}
	return out
}

// Resize decodes data, applies opts and re-encodes through eng.
func Resize(ctx context.Context, eng *engine.Engine, data []byte, opts Options) (*Output, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	surface, err := eng.Decode(data)
	if err != nil {
		return nil, err
	}
	img := Transform(surface.Image, opts.Width, opts.Height, opts.Rotation)

	out, err := eng.EncodeImage(ctx, img, engine.Options{Quality: opts.Quality, Format: opts.Format})
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	b := img.Bounds()
	return &Output{
		Data:   out,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: opts.Format,
		MIME:   eng.MIME(opts.Format),
	}, nil
}
