package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/hasher"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/report"
	"go.uber.org/zap"
)

// processFile ingests, re-encodes and writes one source.
func processFile(ctx context.Context, src Source, cfg Config, eng *engine.Engine) report.Entry {
	entry := report.Entry{Source: report.SourceInfo{Path: src.RelPath, Size: src.Size}}
	fail := func(err error) report.Entry {
		entry.Error = err.Error()
		return entry
	}

	a, err := asset.IngestFile(src.AbsPath, nil)
	if err != nil {
		return fail(err)
	}
	entry.Source.MIME = a.MIME
	entry.Source.Size = a.Size

	surface, err := eng.Decode(a.Data)
	if err != nil {
		return fail(fmt.Errorf("decode %s: %w", src.RelPath, err))
	}
	entry.Source.Width, entry.Source.Height = surface.Width, surface.Height

	data, err := eng.EncodeImage(ctx, surface.Image, engine.Options{Quality: cfg.Quality, Format: cfg.Format})
	if err != nil {
		return fail(fmt.Errorf("encode %s: %w", src.RelPath, err))
	}

	if cfg.NoRegressSize && int64(len(data)) >= a.Size {
		cfg.Logger.Debug("skip: output not smaller",
			zap.String("file", src.RelPath), zap.Int("encoded", len(data)), zap.Int64("original", a.Size))
		entry.Skipped = true
		return entry
	}

	relDir := filepath.Dir(filepath.FromSlash(src.RelPath))
	name := present.DownloadName(src.RelPath, eng.Extension(cfg.Format))
	outPath, err := present.Save(filepath.Join(cfg.OutputDir, relDir), name, data)
	if err != nil {
		return fail(fmt.Errorf("write %s: %w", src.RelPath, err))
	}
	rel, err := filepath.Rel(cfg.OutputDir, outPath)
	if err != nil {
		rel = outPath
	}

	entry.Output = &report.OutputInfo{
		Path:   filepath.ToSlash(rel),
		Format: cfg.Format,
		Size:   int64(len(data)),
		Hash:   hasher.Fingerprint(data, 16),
	}
	entry.SavedPercent = present.SavedPercent(a.Size, int64(len(data)))
	return entry
}

// writable reports whether dir exists or can be created.
func writable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	return nil
}
