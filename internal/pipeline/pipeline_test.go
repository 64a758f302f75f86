package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
)

// noisePNG is incompressible enough that any JPEG comes out smaller.
func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, uint64(w*h)))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(rng.UintN(256)), G: uint8(rng.UintN(256)), B: uint8(rng.UintN(256)), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func testEngine() *engine.Engine {
	return engine.NewWithRegistry(encoder.NewRegistryWith(&encoder.JPEGEncoder{}, &encoder.PNGEncoder{}), nil)
}

func TestScanImages(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.png"), []byte("x"))
	writeFile(t, filepath.Join(in, "sub", "b.JPG"), []byte("x"))
	writeFile(t, filepath.Join(in, "notes.txt"), []byte("x"))
	writeFile(t, filepath.Join(in, ".hidden", "c.png"), []byte("x"))
	writeFile(t, filepath.Join(in, "out", "optimized-a.jpg"), []byte("x"))

	got, err := ScanImages(in, filepath.Join(in, "out"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sources: %+v", len(got), got)
	}
	if got[0].RelPath != "a.png" || got[1].RelPath != "sub/b.JPG" {
		t.Errorf("unexpected paths: %s, %s", got[0].RelPath, got[1].RelPath)
	}
}

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(in, "one.png"), noisePNG(t, 64, 64))
	writeFile(t, filepath.Join(in, "nested", "two.png"), noisePNG(t, 48, 32))
	writeFile(t, filepath.Join(in, "broken.png"), []byte("definitely not a png"))

	p := New(Config{InputDir: in, OutputDir: out, Format: "jpg", Quality: 50, Workers: 2}, testEngine())
	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if r.Format != "jpeg" {
		t.Errorf("format: got %q", r.Format)
	}
	if r.Stats.TotalFiles != 3 || r.Stats.Written != 2 || r.Stats.Failed != 1 {
		t.Errorf("stats: %+v", r.Stats)
	}
	if r.Stats.SavedPercent <= 0 {
		t.Errorf("expected a saving, got %d%%", r.Stats.SavedPercent)
	}

	e := r.Files["nested/two.png"]
	if e.Output == nil {
		t.Fatalf("nested output missing: %+v", e)
	}
	if e.Output.Path != "nested/optimized-two.jpg" {
		t.Errorf("output path: got %q", e.Output.Path)
	}
	if e.Source.Width != 48 || e.Source.Height != 32 || e.Source.MIME != "image/png" {
		t.Errorf("source info: %+v", e.Source)
	}
	if _, err := os.Stat(filepath.Join(out, "nested", "optimized-two.jpg")); err != nil {
		t.Errorf("output file: %v", err)
	}
	if r.Files["broken.png"].Error == "" {
		t.Error("broken file should carry an error")
	}
}

func TestRun_NoRegressSize(t *testing.T) {
	in := t.TempDir()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(in, "dot.png"), buf.Bytes())

	p := New(Config{InputDir: in, OutputDir: filepath.Join(in, "out"), Quality: 95, NoRegressSize: true}, testEngine())
	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !r.Files["dot.png"].Skipped || r.Stats.SkippedRegress != 1 {
		t.Errorf("expected skip: %+v", r.Files["dot.png"])
	}
}

func TestRun_AllFail(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "bad.png"), []byte("nope"))
	p := New(Config{InputDir: in, OutputDir: filepath.Join(in, "out")}, testEngine())
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("expected error when every file fails")
	}
}

func TestRun_Empty(t *testing.T) {
	p := New(Config{InputDir: t.TempDir(), OutputDir: filepath.Join(t.TempDir(), "o")}, testEngine())
	if _, err := p.Run(context.Background()); err == nil {
		t.Error("expected error for empty input dir")
	}
}
