package present

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSavedPercent(t *testing.T) {
	tests := []struct {
		orig, comp int64
		want       int
	}{
		{1000, 250, 75},
		{1000, 1000, 0},
		{0, 123, 0},
		{3, 1, 67},
		{100, 150, -50},
		{1000, 0, 100},
	}
	for _, tt := range tests {
		if got := SavedPercent(tt.orig, tt.comp); got != tt.want {
			t.Errorf("SavedPercent(%d,%d) = %d, want %d", tt.orig, tt.comp, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1536:    "1.5 KiB",
		5 << 20: "5.0 MiB",
		-2048:   "-2.0 KiB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestSummary(t *testing.T) {
	got := NewStats(2048, 512).Summary()
	if want := "2.0 KB → 0.5 KB (saved 75%)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDownloadNames(t *testing.T) {
	if got := DownloadName("holiday.png", "webp"); got != "optimized-holiday.webp" {
		t.Errorf("DownloadName: %q", got)
	}
	if got := DownloadName("/tmp/x/cat.jpeg", "jpg"); got != "optimized-cat.jpg" {
		t.Errorf("DownloadName with dir: %q", got)
	}
	if got := ResizedName("banner.jpg", "png"); got != "banner-stylo-tools.png" {
		t.Errorf("ResizedName: %q", got)
	}
	if got := CleanName("dir/selfie.jpg"); got != "clean-selfie.jpg" {
		t.Errorf("CleanName: %q", got)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := Save(dir, "../escape.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("saved outside dir: %s", path)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "data" {
		t.Errorf("read back: %q %v", got, err)
	}
}
