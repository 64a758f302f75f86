package cmd

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/stylo-cli/internal/report"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()

	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	w.Close()
	return <-done, err
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x * y) % 251),
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: uint8(y * 3), B: 30, A: uint8(x * 255 / w)})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 98}); err != nil {
		t.Fatal(err)
	}
}

// fixtures lays out a small input tree: a jpeg banner, nested png cards,
// an alpha logo and a text file the scanner must ignore.
func fixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "banner.jpg"), gradient(400, 225))
	for i, name := range []string{"card-1.png", "card-2.png"} {
		writePNG(t, filepath.Join(dir, "cards", name), gradient(200+i*10, 150))
	}
	writePNG(t, filepath.Join(dir, "logo.png"), alphaGradient(100, 100))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCompressDirWritesValidReport(t *testing.T) {
	in := fixtures(t)
	out := filepath.Join(t.TempDir(), "out")

	stdout, err := run(t, "compress", in, "-o", out, "-q", "60", "-w", "2", "--no-regress-size=false")
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if !strings.Contains(stdout, "stylo compress complete") {
		t.Errorf("missing summary in output:\n%s", stdout)
	}

	data, err := os.ReadFile(filepath.Join(out, reportName))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if r.Stats.TotalFiles != 4 {
		t.Errorf("total files: got %d, want 4", r.Stats.TotalFiles)
	}
	if r.Stats.Written != 4 || r.Stats.Failed != 0 {
		t.Errorf("stats: %+v", r.Stats)
	}
	if _, ok := r.Files["notes.txt"]; ok {
		t.Error("text file should not be scanned")
	}
	if e, ok := r.Files["cards/card-1.png"]; !ok || e.Output == nil || e.Output.Format != "jpeg" {
		t.Errorf("card entry: %+v", e)
	}

	if _, err := run(t, "validate", out); err != nil {
		t.Errorf("validate: %v", err)
	}
	stdout, err = run(t, "stats", filepath.Join(out, reportName))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(stdout, "Total files:      4") {
		t.Errorf("stats output:\n%s", stdout)
	}
}

func TestValidateDetectsTampering(t *testing.T) {
	in := fixtures(t)
	out := filepath.Join(t.TempDir(), "out")
	if _, err := run(t, "compress", in, "-o", out, "--no-regress-size=false"); err != nil {
		t.Fatalf("compress: %v", err)
	}

	// Truncate one output behind the report's back.
	var r report.Report
	data, _ := os.ReadFile(filepath.Join(out, reportName))
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatal(err)
	}
	e := r.Files["banner.jpg"]
	if e.Output == nil {
		t.Fatal("banner has no output")
	}
	if err := os.WriteFile(filepath.Join(out, e.Output.Path), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := validateReport(&r, out)
	if len(errs) == 0 {
		t.Fatal("expected validation errors")
	}
	if !strings.Contains(strings.Join(errs, "\n"), "size mismatch") {
		t.Errorf("errors: %v", errs)
	}
}

func TestCompressSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writePNG(t, src, gradient(120, 80))
	out := filepath.Join(dir, "out")

	if _, err := run(t, "compress", src, "-o", out, "-f", "png", "--no-regress-size=false"); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "optimized-photo.png")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestResizeCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	writePNG(t, src, gradient(80, 40))

	if _, err := run(t, "resize", src, "--width", "40", "-o", dir); err != nil {
		t.Fatalf("resize: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "wide-stylo-tools.png"))
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 20 {
		t.Errorf("got %dx%d, want 40x20", cfg.Width, cfg.Height)
	}
}

func TestTextShortcuts(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"encode", "hi"}, "aGk="},
		{[]string{"decode", "--as", "url", "a%20b"}, "a b"},
		{[]string{"case", "--mode", "snake", "Hello World"}, "hello_world"},
		{[]string{"text", "base64", "-O", "action=decode", "aGk="}, "hi"},
		{[]string{"uuid", "--count", "2", "--format", "uppercase"}, "-"},
		{[]string{"md2html", "# Hi"}, "<h1>Hi</h1>"},
		{[]string{"color", "#ff0000"}, "rgb(255, 0, 0)"},
		{[]string{"gradient", "--type", "radial", "#ff0000, #0000ff"}, "radial-gradient(circle, #ff0000 0%, #0000ff 100%)"},
		{[]string{"tokens", "--mode", "dark"}, ".dark {"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestTextUnknownTool(t *testing.T) {
	if _, err := run(t, "text", "no-such-tool", "x"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "search", "jwt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "jwt-decoder") {
		t.Errorf("search output:\n%s", out)
	}
}

func TestQRCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "qr", "https://example.com", "--size", "160", "-o", dir); err != nil {
		t.Fatalf("qr: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "qr-code.png"))
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || cfg.Width != 160 || cfg.Height != 160 {
		t.Errorf("got %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestSVGCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 5"><circle cx="5" cy="2.5" r="2" fill="blue"/></svg>`
	if err := os.WriteFile(src, []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "svg2png", src, "--width", "100", "-o", dir); err != nil {
		t.Fatalf("svg2png: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "logo.png"))
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("got %dx%d, want 100x50", cfg.Width, cfg.Height)
	}
}

func TestFaviconCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	writePNG(t, src, gradient(64, 64))
	if _, err := run(t, "favicon", src, "-o", dir); err != nil {
		t.Fatalf("favicon: %v", err)
	}
	for _, name := range []string{"favicon.ico", "favicon-16x16.png", "favicon-256x256.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
