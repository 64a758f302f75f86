package hasher

import (
	"strings"
	"testing"
)

func TestFingerprint_StableAndTruncated(t *testing.T) {
	data := []byte("stylo")
	full := Fingerprint(data, 0)
	if len(full) != 16 {
		t.Fatalf("full length: got %d", len(full))
	}
	if Fingerprint(data, 0) != full {
		t.Error("fingerprint not deterministic")
	}
	if short := Fingerprint(data, 8); short != full[:8] {
		t.Errorf("truncated: got %q, want %q", short, full[:8])
	}
	if Fingerprint(data, 99) != full {
		t.Error("oversized hexLen should return full digest")
	}
}

func TestFingerprintReader_MatchesBytes(t *testing.T) {
	data := "a somewhat longer payload that streams"
	got, err := FingerprintReader(strings.NewReader(data), 12)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	if want := Fingerprint([]byte(data), 12); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestETag_Quoted(t *testing.T) {
	tag := ETag([]byte{1, 2, 3})
	if !strings.HasPrefix(tag, `"`) || !strings.HasSuffix(tag, `"`) || len(tag) != 18 {
		t.Errorf("unexpected etag %q", tag)
	}
}

func TestFingerprint_KnownEmpty(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	if got := Fingerprint(nil, 0); got != "ef46db3751d8e999" {
		t.Errorf("got %q", got)
	}
}
