// Package scrub removes embedded metadata (EXIF, XMP, ICC, comments) by
// decoding an image to pixels and encoding it again in its own format.
package scrub

import (
	"context"
	"fmt"

	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/present"
)

// Quality used when the source is lossy.
const Quality = 92

// Result is a metadata-free copy of a source.
type Result struct {
	Name   string
	Data   []byte
	Format string
	MIME   string
}

// Strip re-encodes src in its own format. Formats the engine cannot
// write (gif, bmp, tiff) come out as png.
func Strip(ctx context.Context, eng *engine.Engine, src *asset.SourceAsset) (*Result, error) {
	format := targetFormat(eng, src.MIME)
	out, err := eng.Encode(ctx, src.Data, engine.Options{Quality: Quality, Format: format})
	if err != nil {
		return nil, fmt.Errorf("strip %s: %w", src.Name, err)
	}
	return &Result{
		Name:   present.CleanName(src.Name),
		Data:   out,
		Format: format,
		MIME:   eng.MIME(format),
	}, nil
}

func targetFormat(eng *engine.Engine, mime string) string {
	name, ok := encoder.Canonical(mime)
	if !ok {
		return "png"
	}
	for _, f := range eng.Formats() {
		if f == name {
			return name
		}
	}
	return "png"
}
