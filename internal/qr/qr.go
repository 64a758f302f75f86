// Package qr renders text as a QR code PNG.
package qr

import (
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/tools/palette"
	qrcode "github.com/skip2/go-qrcode"
)

// Size limits in pixels; the output is square.
const (
	DefaultSize = 256
	MinSize     = 128
	MaxSize     = 512
)

// Default colors and download name.
const (
	DefaultBackground = "#ffffff"
	DefaultForeground = "#000000"
	FileName          = "qr-code.png"
)

// Options style one code. Zero values get the defaults.
type Options struct {
	Size       int
	Background string
	Foreground string
	// Level is the error correction level: low, medium (default), high
	// or highest.
	Level string
}

var levels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

// Generate encodes content as a PNG. Sizes outside MinSize-MaxSize are
// clamped into range.
func Generate(content string, opts Options) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.ErrEmptyInput
	}
	level, ok := levels[strings.ToLower(opts.Level)]
	if opts.Level == "" {
		level, ok = qrcode.Medium, true
	}
	if !ok {
		return nil, apperr.Validationf("Unknown error correction level %q (use low, medium, high or highest).", opts.Level)
	}
	bg, err := palette.Parse(orDefault(opts.Background, DefaultBackground))
	if err != nil {
		return nil, err
	}
	fg, err := palette.Parse(orDefault(opts.Foreground, DefaultForeground))
	if err != nil {
		return nil, err
	}
	if bg.Hex() == fg.Hex() {
		return nil, apperr.Validationf("Foreground and background colors must differ.")
	}

	code, err := qrcode.New(content, level)
	if err != nil {
		return nil, apperr.Validation(err, "The text is too long for a QR code.")
	}
	code.BackgroundColor = bg
	code.ForegroundColor = fg
	return code.PNG(clampSize(opts.Size))
}

func clampSize(n int) int {
	switch {
	case n == 0:
		return DefaultSize
	case n < MinSize:
		return MinSize
	case n > MaxSize:
		return MaxSize
	}
	return n
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
