// Package asset models the transient buffers of the image pipeline: the
// loaded source file and the re-encoded result. Both own a display URL
// that must be released when superseded.
package asset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/blobstore"
	"github.com/h2non/filetype"
)

// SourceAsset is the originally loaded file.
type SourceAsset struct {
	Name       string
	MIME       string
	Data       []byte
	Size       int64
	DisplayURL string
}

// EncodedResult is the output of one re-encode.
type EncodedResult struct {
	Data       []byte
	Size       int64
	Format     string
	MIME       string
	Quality    int
	DisplayURL string
}

// extensionMIME is the last-resort type lookup by file extension.
var extensionMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
}

// DetectMIME decides the media type of data: content sniffing first, then
// the declared type, then the file extension.
func DetectMIME(name, declared string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if declared = strings.TrimSpace(declared); declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if m, ok := extensionMIME[strings.ToLower(filepath.Ext(name))]; ok {
		return m
	}
	return "application/octet-stream"
}

// IsImage reports whether mime names an image type.
func IsImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// Ingest reads r fully into memory, rejects non-image content and mints a
// display URL for the preview. A nil store skips URL allocation.
func Ingest(name, declaredMIME string, r io.Reader, store *blobstore.Store) (*SourceAsset, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, apperr.Transient(fmt.Errorf("read %s: %w", name, err), "The file could not be read.")
	}
	data := buf.Bytes()

	mime := DetectMIME(name, declaredMIME, data)
	if !IsImage(mime) {
		return nil, fmt.Errorf("ingest %s (%s): %w", name, mime, apperr.ErrNotImage)
	}

	a := &SourceAsset{
		Name: filepath.Base(name),
		MIME: mime,
		Data: data,
		Size: int64(len(data)),
	}
	if store != nil {
		a.DisplayURL = store.Create(data, mime)
	}
	return a, nil
}

// IngestFile opens path and ingests it.
func IngestFile(path string, store *blobstore.Store) (*SourceAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Transient(fmt.Errorf("open %s: %w", path, err), "The file could not be opened.")
	}
	defer f.Close()
	return Ingest(path, "", f, store)
}

// Release frees the asset's display URL.
func (a *SourceAsset) Release(store *blobstore.Store) {
	if a == nil || store == nil {
		return
	}
	store.Release(a.DisplayURL)
	a.DisplayURL = ""
}

// Release frees the result's display URL.
func (r *EncodedResult) Release(store *blobstore.Store) {
	if r == nil || store == nil {
		return
	}
	store.Release(r.DisplayURL)
	r.DisplayURL = ""
}
