// Package svgpng rasterises SVG documents into PNG images.
package svgpng

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Output width limits in pixels; the height follows the aspect ratio.
const (
	DefaultWidth = 1024
	MaxWidth     = 8192
)

// ErrNotSVG rejects uploads that do not contain an <svg> element.
var ErrNotSVG = &apperr.Error{
	Kind:    apperr.KindValidation,
	Err:     fmt.Errorf("not an svg document"),
	UserMsg: "Please upload an SVG file.",
}

// IsSVG reports whether data looks like an SVG document.
func IsSVG(data []byte) bool {
	return bytes.Contains(bytes.ToLower(data), []byte("<svg"))
}

// Rasterize draws the SVG at width pixels wide, keeping its aspect
// ratio. Transparent areas stay transparent.
func Rasterize(data []byte, width int) (*image.RGBA, error) {
	if !IsSVG(data) {
		return nil, ErrNotSVG
	}
	if width == 0 {
		width = DefaultWidth
	}
	if width < 0 || width > MaxWidth {
		return nil, apperr.Validationf("Width must be between 1 and %d pixels, got %d.", MaxWidth, width)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, apperr.Validation(err, "The SVG could not be parsed.")
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, apperr.Validationf("The SVG has no size. Add a viewBox or width and height attributes.")
	}
	height := int(math.Max(1, math.Round(float64(width)*vh/vw)))

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}

// Result is a converted document.
type Result struct {
	Name   string
	Data   []byte
	Width  int
	Height int
}

// Convert rasterises an uploaded SVG and encodes it as PNG through eng.
func Convert(ctx context.Context, eng *engine.Engine, name string, data []byte, width int) (*Result, error) {
	img, err := Rasterize(data, width)
	if err != nil {
		return nil, err
	}
	out, err := eng.EncodeImage(ctx, img, engine.Options{Format: "png"})
	if err != nil {
		return nil, fmt.Errorf("svg to png: %w", err)
	}
	b := img.Bounds()
	return &Result{Name: OutputName(name), Data: out, Width: b.Dx(), Height: b.Dy()}, nil
}

// OutputName swaps the .svg extension for .png; unnamed uploads become
// "converted.png".
func OutputName(name string) string {
	base := filepath.Base(name)
	if strings.EqualFold(filepath.Ext(base), ".svg") {
		base = base[:len(base)-len(".svg")]
	}
	if base == "" || base == "." || base == "/" {
		base = "converted"
	}
	return base + ".png"
}
