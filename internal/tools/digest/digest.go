// Package digest computes hex message digests of text.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/cespare/xxhash/v2"
)

// Algorithm names in display order.
var Algorithms = []string{"SHA-1", "SHA-256", "SHA-384", "SHA-512", "XXH64"}

var constructors = map[string]func() hash.Hash{
	"SHA-1":   sha1.New,
	"SHA-256": sha256.New,
	"SHA-384": sha512.New384,
	"SHA-512": sha512.New,
	"XXH64":   func() hash.Hash { return xxhash.New() },
}

// Result is one algorithm's digest.
type Result struct {
	Algorithm string `json:"algorithm"`
	Hex       string `json:"hex"`
}

// Sum hashes data with the named algorithm. Names are matched without
// regard to case or the dash ("sha256" works).
func Sum(algorithm string, data []byte) (string, error) {
	name := canonical(algorithm)
	newHash, ok := constructors[name]
	if !ok {
		return "", apperr.Validationf("Unknown hash algorithm %q. Choose one of: %s.", algorithm, strings.Join(Algorithms, ", "))
	}
	h := newHash()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// All hashes data with every algorithm.
func All(data []byte) []Result {
	out := make([]Result, 0, len(Algorithms))
	for _, name := range Algorithms {
		sum, _ := Sum(name, data)
		out = append(out, Result{Algorithm: name, Hex: sum})
	}
	return out
}

func canonical(name string) string {
	n := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, a := range Algorithms {
		if strings.ReplaceAll(a, "-", "") == n {
			return a
		}
	}
	return n
}
