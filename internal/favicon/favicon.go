// Package favicon builds the standard favicon set from one image: square
// PNGs from 16 to 256 pixels plus a multi-resolution favicon.ico.
package favicon

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/disintegration/imaging"
)

// Sizes of the PNG set, smallest first.
var Sizes = []int{16, 32, 48, 64, 128, 256}

// ICOSizes are embedded in favicon.ico.
var ICOSizes = []int{16, 32, 48}

// ICOName and ArchiveName are the download names.
const (
	ICOName     = "favicon.ico"
	ArchiveName = "favicons.zip"
)

// Icon is one rendered size.
type Icon struct {
	Size int
	Name string
	Data []byte
}

// Set is the generated favicon bundle.
type Set struct {
	PNGs []Icon
	ICO  []byte
}

// PNGName is the file name of the size×size PNG.
func PNGName(size int) string { return fmt.Sprintf("favicon-%dx%d.png", size, size) }

// Square scales img to fit a size×size transparent canvas, centred and
// without distortion.
func Square(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, size*b.Dy()/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, size*b.Dx()/b.Dy())
	}
	scaled := imaging.Resize(img, w, h, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(size, size, color.NRGBA{}), scaled)
}

// Generate decodes data through eng and renders every size.
func Generate(ctx context.Context, eng *engine.Engine, data []byte) (*Set, error) {
	surface, err := eng.Decode(data)
	if err != nil {
		return nil, err
	}
	set := &Set{}
	bySize := make(map[int][]byte, len(Sizes))
	for _, size := range Sizes {
		out, err := eng.EncodeImage(ctx, Square(surface.Image, size), engine.Options{Format: "png"})
		if err != nil {
			return nil, fmt.Errorf("favicon %d: %w", size, err)
		}
		bySize[size] = out
		set.PNGs = append(set.PNGs, Icon{Size: size, Name: PNGName(size), Data: out})
	}
	entries := make([]Icon, 0, len(ICOSizes))
	for _, size := range ICOSizes {
		entries = append(entries, Icon{Size: size, Data: bySize[size]})
	}
	set.ICO = EncodeICO(entries)
	return set, nil
}

// EncodeICO packs PNG-encoded icons into an ICO container. Sizes of 256
// and above are written as 0, which the format reads as 256.
func EncodeICO(icons []Icon) []byte {
	const headerSize, entrySize = 6, 16
	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.Write(le.AppendUint16(nil, 0)) // reserved
	buf.Write(le.AppendUint16(nil, 1)) // type: icon
	buf.Write(le.AppendUint16(nil, uint16(len(icons))))

	offset := uint32(headerSize + entrySize*len(icons))
	for _, ic := range icons {
		dim := byte(ic.Size)
		if ic.Size >= 256 {
			dim = 0
		}
		buf.Write([]byte{dim, dim, 0, 0})
		buf.Write(le.AppendUint16(nil, 1))  // colour planes
		buf.Write(le.AppendUint16(nil, 32)) // bits per pixel
		buf.Write(le.AppendUint32(nil, uint32(len(ic.Data))))
		buf.Write(le.AppendUint32(nil, offset))
		offset += uint32(len(ic.Data))
	}
	for _, ic := range icons {
		buf.Write(ic.Data)
	}
	return buf.Bytes()
}

// Zip bundles the PNGs and favicon.ico into one archive.
func (s *Set) Zip() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name string, data []byte) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	for _, ic := range s.PNGs {
		if err := add(ic.Name, ic.Data); err != nil {
			return nil, fmt.Errorf("zip %s: %w", ic.Name, err)
		}
	}
	if err := add(ICOName, s.ICO); err != nil {
		return nil, fmt.Errorf("zip %s: %w", ICOName, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: %w", err)
	}
	return buf.Bytes(), nil
}
