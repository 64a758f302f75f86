// Package hasher fingerprints byte buffers with xxHash64. Fingerprints
// name downloads, tag blob responses and let sessions detect that a
// re-encode produced the same bytes as before.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns the xxHash64 of data as hex, truncated to hexLen
// characters when 0 < hexLen < 16.
func Fingerprint(data []byte, hexLen int) string {
	return truncate(encode(xxhash.Sum64(data)), hexLen)
}

// FingerprintReader streams r through xxHash64.
func FingerprintReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(encode(h.Sum64()), hexLen), nil
}

// ETag renders a strong HTTP entity tag for data.
func ETag(data []byte) string {
	return `"` + Fingerprint(data, 16) + `"`
}

func encode(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}

func truncate(s string, n int) string {
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}
