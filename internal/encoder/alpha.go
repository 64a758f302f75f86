package encoder

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// HasAlpha reports whether any pixel of img is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA:
		return anyTranslucent(m.Pix, m.Stride, m.Rect, m.PixOffset)
	case *image.RGBA:
		return anyTranslucent(m.Pix, m.Stride, m.Rect, m.PixOffset)
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// flatten composites translucent images onto white so formats without an
// alpha channel do not turn transparent areas black.
func flatten(img image.Image) image.Image {
	if !HasAlpha(img) {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// anyTranslucent scans the alpha bytes of an 8-bit RGBA-family buffer row
// by row, so sub-images only look at their own rectangle.
func anyTranslucent(pix []uint8, stride int, r image.Rectangle, offset func(x, y int) int) bool {
	if r.Empty() {
		return false
	}
	rowLen := r.Dx() * 4
	start := offset(r.Min.X, r.Min.Y)
	for y := 0; y < r.Dy(); y++ {
		row := pix[start+y*stride : start+y*stride+rowLen]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0xff {
				return true
			}
		}
	}
	return false
}
