// Package blobstore mints display URLs: transient, process-scoped handles
// to in-memory byte buffers, usable as a preview source or download
// target. Every URL must be released explicitly once superseded.
package blobstore

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/hasher"
	"github.com/google/uuid"
)

// Scheme prefixes every display URL handed out by a Store.
const Scheme = "blob:stylo/"

// ErrNotFound is returned for unknown or already released URLs.
var ErrNotFound = errors.New("display url not found")

// Blob is one stored buffer.
type Blob struct {
	ID        string
	MIME      string
	Data      []byte
	ETag      string
	CreatedAt time.Time
}

// Store holds live blobs.
type Store struct {
	mu      sync.Mutex
	blobs   map[string]*Blob
	created int64
	freed   int64
}

// New creates an empty store.
func New() *Store {
	return &Store{blobs: make(map[string]*Blob)}
}

// Create stores data and returns its display URL.
func (s *Store) Create(data []byte, mime string) string {
	b := &Blob{
		ID:        uuid.NewString(),
		MIME:      mime,
		Data:      data,
		ETag:      hasher.ETag(data),
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.blobs[b.ID] = b
	s.created++
	s.mu.Unlock()
	return Scheme + b.ID
}

// Get resolves a display URL or bare id.
func (s *Store) Get(url string) (*Blob, error) {
	id := ID(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// Release frees the buffer behind url. Releasing an empty or unknown URL
// is a no-op and reports false.
func (s *Store) Release(url string) bool {
	if url == "" {
		return false
	}
	id := ID(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return false
	}
	delete(s.blobs, id)
	s.freed++
	return true
}

// Live returns how many URLs are currently unreleased.
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Counters returns the lifetime created/released totals.
func (s *Store) Counters() (created, released int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created, s.freed
}

// ID strips the scheme from a display URL.
func ID(url string) string {
	return strings.TrimPrefix(url, Scheme)
}

// Path maps a display URL onto the HTTP route that serves it.
func Path(url string) string {
	if url == "" {
		return ""
	}
	return "/blob/" + ID(url)
}
