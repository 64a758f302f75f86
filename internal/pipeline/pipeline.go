// Package pipeline compresses every image under a directory with a
// bounded number of workers and summarizes the run in a report.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/report"
	"go.uber.org/zap"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir      string
	OutputDir     string
	Format        string
	Quality       int
	Workers       int
	NoRegressSize bool // drop outputs that are not smaller than the source
	Logger        *zap.Logger
}

// Pipeline orchestrates batch compression. Each file is an independent
// single-shot re-encode; nothing is retried.
type Pipeline struct {
	cfg    Config
	engine *engine.Engine
}

// New creates a configured pipeline.
func New(cfg Config, eng *engine.Engine) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.Format, _ = encoder.Canonical(cfg.Format)
	if eng == nil {
		eng = engine.New(cfg.Logger)
	}
	return &Pipeline{cfg: cfg, engine: eng}
}

// Run executes the batch and returns the report. Individual failures are
// recorded in the report; Run fails only when nothing could be
// processed.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	log := p.cfg.Logger
	if err := p.engine.Init(ctx); err != nil {
		return nil, err
	}
	log.Debug("engine", zap.Strings("formats", p.engine.Formats()))

	if err := writable(p.cfg.OutputDir); err != nil {
		return nil, err
	}

	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	log.Debug("found images", zap.Int("count", len(sources)))

	entries := make([]report.Entry, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}: // acquire
			case <-ctx.Done():
				entries[idx] = report.Entry{
					Source: report.SourceInfo{Path: s.RelPath, Size: s.Size},
					Error:  ctx.Err().Error(),
				}
				return
			}
			defer func() { <-sem }() // release

			log.Debug("processing", zap.String("file", s.RelPath))
			entries[idx] = processFile(ctx, s, p.cfg, p.engine)
			if e := entries[idx]; e.Output != nil {
				log.Debug("done", zap.String("file", s.RelPath), zap.Int("saved_percent", e.SavedPercent))
			}
		}(i, src)
	}
	wg.Wait()

	r := report.New(p.cfg.Format, encoder.ClampQuality(p.cfg.Quality), p.cfg.OutputDir)
	failed := 0
	for _, e := range entries {
		r.Files[e.Source.Path] = e
		if e.Error != "" {
			failed++
			log.Warn("file failed", zap.String("file", e.Source.Path), zap.String("error", e.Error))
		}
	}
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		log.Warn("partial failure", zap.Int("failed", failed), zap.Int("total", len(sources)))
	}

	r.RunInfo = &report.RunInfo{
		Workers:       p.cfg.Workers,
		Encoders:      fmt.Sprint(p.engine.Formats()),
		NoRegressSize: p.cfg.NoRegressSize,
	}
	r.ComputeStats()
	return r, nil
}
