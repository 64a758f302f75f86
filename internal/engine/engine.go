// Package engine is the re-encode engine: it decodes an image buffer into
// a raster surface and re-encodes it at a quality and format. Callers
// reach it through the narrow Encoder capability so the concrete codec
// stack can be swapped without touching pipeline logic.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/disintegration/imageorient"
	"go.uber.org/zap"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultQuality matches the compressor's initial slider position.
const DefaultQuality = 80

// Options selects the output of one re-encode.
type Options struct {
	Quality int    // 0-100, clamped
	Format  string // "jpeg" (default), "png", "webp", "avif"; unknown tags fall back to jpeg
}

// Encoder is the capability the pipeline depends on.
type Encoder interface {
	Encode(ctx context.Context, data []byte, opts Options) ([]byte, error)
}

// Surface is a decoded raster ready for preview or re-encoding.
type Surface struct {
	Image    image.Image
	Format   string // source format reported by the decoder
	Width    int
	Height   int
	HasAlpha bool
}

// Engine is the concrete re-encode engine.
type Engine struct {
	registry *encoder.Registry
	logger   *zap.Logger

	once    sync.Once
	initErr error
}

// New creates an engine over the default encoder registry.
func New(logger *zap.Logger) *Engine {
	return NewWithRegistry(encoder.NewRegistry(), logger)
}

// NewWithRegistry creates an engine over a caller-supplied registry.
func NewWithRegistry(r *encoder.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: r, logger: logger}
}

// Init loads the engine once. The default format must be available;
// anything else is optional. Later calls return the first result.
func (e *Engine) Init(ctx context.Context) error {
	e.once.Do(func() {
		if err := ctx.Err(); err != nil {
			e.initErr = err
			return
		}
		if e.registry.Get(encoder.DefaultFormat) == nil {
			e.initErr = fmt.Errorf("%w: %s", apperr.ErrEngineUnavailable, e.registry)
			return
		}
		e.logger.Debug("engine ready", zap.Strings("formats", e.registry.Available()))
	})
	return e.initErr
}

// Formats lists the output formats this engine can produce.
func (e *Engine) Formats() []string {
	return e.registry.Available()
}

// MIME returns the media type the engine emits for format.
func (e *Engine) MIME(format string) string {
	if enc := e.registry.Get(format); enc != nil {
		return enc.MIME()
	}
	return "application/octet-stream"
}

// Extension returns the file extension the engine uses for format.
func (e *Engine) Extension(format string) string {
	if enc := e.registry.Get(format); enc != nil {
		return enc.Extension()
	}
	name, _ := encoder.Canonical(format)
	return name
}

// Decode turns raw bytes into a Surface, honouring EXIF orientation.
func (e *Engine) Decode(data []byte) (*Surface, error) {
	img, format, err := imageorient.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Validation(fmt.Errorf("decode image: %w", err), "The file could not be read as an image.")
	}
	b := img.Bounds()
	return &Surface{
		Image:    img,
		Format:   format,
		Width:    b.Dx(),
		Height:   b.Dy(),
		HasAlpha: encoder.HasAlpha(img),
	}, nil
}

// Encode decodes data and re-encodes it per opts.
func (e *Engine) Encode(ctx context.Context, data []byte, opts Options) ([]byte, error) {
	if err := e.Init(ctx); err != nil {
		return nil, err
	}
	s, err := e.Decode(data)
	if err != nil {
		return nil, err
	}
	return e.EncodeImage(ctx, s.Image, opts)
}

// EncodeImage re-encodes an already decoded raster.
func (e *Engine) EncodeImage(ctx context.Context, img image.Image, opts Options) ([]byte, error) {
	if err := e.Init(ctx); err != nil {
		return nil, err
	}
	enc, err := e.registry.Resolve(opts.Format)
	if err != nil {
		return nil, apperr.Dependency(err, "That output format is not available on this machine.")
	}
	q := encoder.ClampQuality(opts.Quality)
	out, err := enc.Encode(ctx, img, q)
	if err != nil {
		return nil, fmt.Errorf("%s compression failed: %w", enc.Format(), err)
	}
	e.logger.Debug("re-encoded",
		zap.String("format", enc.Format()),
		zap.Int("quality", q),
		zap.Int("bytes", len(out)),
	)
	return out, nil
}
