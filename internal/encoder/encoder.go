// Package encoder holds the per-format image encoders the re-encode
// engine dispatches to.
package encoder

import (
	"context"
	"image"
)

// Encoder encodes a raster surface into one output format.
type Encoder interface {
	// Format returns the canonical format name ("jpeg", "png", "webp", "avif").
	Format() string

	// Extension returns the file extension without dot.
	Extension() string

	// MIME returns the media type of the encoded bytes.
	MIME() string

	// Lossy reports whether quality affects the output.
	Lossy() bool

	// Available returns true if the encoder is ready to use.
	// External encoders (avifenc) may not be installed.
	Available() bool

	// Encode converts img to bytes at the given quality (0-100).
	Encode(ctx context.Context, img image.Image, quality int) ([]byte, error)
}

// ClampQuality forces q into the 0-100 range the engine accepts.
func ClampQuality(q int) int {
	switch {
	case q < 0:
		return 0
	case q > 100:
		return 100
	default:
		return q
	}
}
