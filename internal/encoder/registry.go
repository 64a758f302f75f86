package encoder

import (
	"fmt"
	"strings"
)

// DefaultFormat is used when a request names no format or an unknown one.
const DefaultFormat = "jpeg"

// priority is the display order of formats.
var priority = []string{"avif", "webp", "jpeg", "png"}

// aliases maps accepted spellings onto canonical format names.
var aliases = map[string]string{
	"jpg":        "jpeg",
	"jpeg":       "jpeg",
	"image/jpeg": "jpeg",
	"png":        "png",
	"image/png":  "png",
	"webp":       "webp",
	"image/webp": "webp",
	"avif":       "avif",
	"image/avif": "avif",
}

// Registry holds all available encoders and selects one per format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	return NewRegistryWith(
		&AVIFEncoder{},
		&WebPEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
	)
}

// NewRegistryWith builds a registry from the given encoders. Only
// available ones are kept.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Canonical normalizes a format tag. Unknown tags map to DefaultFormat
// and ok is false.
func Canonical(format string) (name string, ok bool) {
	name, ok = aliases[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return DefaultFormat, false
	}
	return name, true
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	name, _ := Canonical(format)
	return r.encoders[name]
}

// Resolve returns the encoder for format. Unknown tags resolve to
// DefaultFormat; a known format whose encoder is missing is an error.
func (r *Registry) Resolve(format string) (Encoder, error) {
	name, _ := Canonical(format)
	if enc, ok := r.encoders[name]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("no encoder available for %q", name)
}

// Available returns all available format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
