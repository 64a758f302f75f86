// Package present turns an encode outcome into what the user sees: size
// statistics and the download action.
package present

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats compares the source and re-encoded sizes.
type Stats struct {
	Original     int64 `json:"original"`
	Compressed   int64 `json:"compressed"`
	SavedPercent int   `json:"saved_percent"`
}

// SavedPercent returns round((1 - compressed/original) * 100). A zero
// original yields 0. Growth shows up as a negative number.
func SavedPercent(original, compressed int64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round((1 - float64(compressed)/float64(original)) * 100))
}

// NewStats builds Stats for one result.
func NewStats(original, compressed int64) Stats {
	return Stats{
		Original:     original,
		Compressed:   compressed,
		SavedPercent: SavedPercent(original, compressed),
	}
}

// Summary renders the sizes the way the compressor shows them.
func (s Stats) Summary() string {
	return fmt.Sprintf("%s → %s (saved %d%%)", KB(s.Original), KB(s.Compressed), s.SavedPercent)
}

// KB renders n in kibibytes with one decimal, e.g. "1.5 KB".
func KB(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// FormatBytes renders n with the largest fitting binary unit.
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// DownloadName derives the compressor's download filename from the
// source name and the output extension.
func DownloadName(source, ext string) string {
	return "optimized-" + swapExt(source, ext)
}

// ResizedName derives the resizer's download filename.
func ResizedName(source, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" {
		base = "image"
	}
	return base + "-stylo-tools." + ext
}

// CleanName derives the EXIF remover's download filename.
func CleanName(source string) string {
	return "clean-" + filepath.Base(source)
}

func swapExt(name, ext string) string {
	name = filepath.Base(name)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || base == "." {
		base = "image"
	}
	if ext == "" {
		return base
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}

// Save writes data to dir/name and returns the written path. The
// directory is created if missing.
func Save(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
