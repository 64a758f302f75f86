// Package session holds the state of one live compressor instance: the
// loaded source, the current result, the chosen quality and format.
// Quality and format changes re-encode after a quiet period, and only the
// newest request may publish a result.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/blobstore"
	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/bep/debounce"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a slider change re-encodes.
const DefaultDebounce = 300 * time.Millisecond

// ErrSuperseded is returned by an encode whose result lost to a newer
// request.
var ErrSuperseded = errors.New("superseded by a newer request")

// ErrNoSource is returned when an encode is requested before any load.
var ErrNoSource = apperr.Validation(errors.New("no source loaded"), "Load an image first.")

// Engine is what a session needs from the re-encode engine.
type Engine interface {
	engine.Encoder
	Init(ctx context.Context) error
	MIME(format string) string
}

// State is the lifecycle position of a session.
type State int

const (
	StateEmpty State = iota
	StateEncoding
	StateReady
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEncoding:
		return "encoding"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Update is published whenever the visible state changes.
type Update struct {
	Generation uint64
	State      State
	Result     *asset.EncodedResult // nil unless a new result landed
	Stats      present.Stats
	Err        error
}

// Options configures a session.
type Options struct {
	// Quality is the starting quality; nil selects engine.DefaultQuality.
	// Zero is a valid setting.
	Quality  *int
	Format   string
	Debounce time.Duration
	Logger   *zap.Logger
}

// Session is one compressor instance. All methods are safe for
// concurrent use.
type Session struct {
	id     string
	eng    Engine
	store  *blobstore.Store
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	debounced func(func())
	updates   chan Update
	wg        sync.WaitGroup

	mu      sync.Mutex
	source  *asset.SourceAsset
	result  *asset.EncodedResult
	quality int
	format  string
	state   State
	gen     uint64
	initErr error
	closed  bool
}

// New starts a session and initialises the engine. An init failure does
// not return an error: the session comes up in StateFailed and every
// operation reports it.
func New(ctx context.Context, eng Engine, store *blobstore.Store, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	quality := engine.DefaultQuality
	if opts.Quality != nil {
		quality = *opts.Quality
	}
	format, _ := encoder.Canonical(opts.Format)

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:        uuid.NewString(),
		eng:       eng,
		store:     store,
		ctx:       sctx,
		cancel:    cancel,
		debounced: debounce.New(opts.Debounce),
		updates:   make(chan Update, 16),
		quality:   encoder.ClampQuality(quality),
		format:    format,
	}
	s.logger = opts.Logger.With(zap.String("session", s.id))

	if err := eng.Init(sctx); err != nil {
		s.state = StateFailed
		s.initErr = err
		s.logger.Error("engine init failed", zap.Error(err))
	}
	return s
}

// ID identifies the session in logs and on the wire.
func (s *Session) ID() string { return s.id }

// Updates delivers state changes. The channel closes on Close.
func (s *Session) Updates() <-chan Update { return s.updates }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Quality returns the current quality setting.
func (s *Session) Quality() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quality
}

// Format returns the current canonical output format.
func (s *Session) Format() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// Load replaces the source and encodes it immediately. Non-image input
// is rejected with apperr.ErrNotImage and leaves the session untouched.
func (s *Session) Load(name, declaredMIME string, r io.Reader) (*asset.EncodedResult, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	src, err := asset.Ingest(name, declaredMIME, r, nil)
	if err != nil {
		s.logger.Debug("load rejected", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, apperr.ErrSessionClosed
	}
	// Previous URLs go before the new source gets one.
	s.result.Release(s.store)
	s.result = nil
	s.source.Release(s.store)
	if s.store != nil {
		src.DisplayURL = s.store.Create(src.Data, src.MIME)
	}
	s.source = src
	s.mu.Unlock()

	s.logger.Debug("source loaded", zap.String("name", src.Name), zap.Int64("size", src.Size))
	return s.Encode(s.ctx)
}

// SetQuality changes the quality and schedules a debounced re-encode.
func (s *Session) SetQuality(q int) error {
	return s.change(func() { s.quality = encoder.ClampQuality(q) })
}

// SetFormat changes the output format and schedules a debounced
// re-encode. Unknown tags fall back to jpeg.
func (s *Session) SetFormat(format string) error {
	return s.change(func() { s.format, _ = encoder.Canonical(format) })
}

func (s *Session) change(apply func()) error {
	if err := s.usable(); err != nil {
		return err
	}
	s.mu.Lock()
	apply()
	hasSource := s.source != nil
	s.mu.Unlock()
	if hasSource {
		s.debounced(s.encodeDebounced)
	}
	return nil
}

func (s *Session) encodeDebounced() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	if _, err := s.Encode(s.ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		s.logger.Warn("re-encode failed", zap.Error(err))
	}
}

// Encode re-encodes the current source with the current settings and
// blocks until done. If a newer request started meanwhile the output is
// dropped and ErrSuperseded returned.
func (s *Session) Encode(ctx context.Context) (*asset.EncodedResult, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return nil, ErrNoSource
	}
	s.gen++
	gen := s.gen
	data := s.source.Data
	opts := engine.Options{Quality: s.quality, Format: s.format}
	s.state = StateEncoding
	s.publish(Update{Generation: gen, State: StateEncoding})
	s.mu.Unlock()

	out, err := s.eng.Encode(ctx, data, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, apperr.ErrSessionClosed
	}
	if gen != s.gen {
		s.logger.Debug("discarding stale result", zap.Uint64("gen", gen), zap.Uint64("latest", s.gen))
		return nil, ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, apperr.ErrEngineUnavailable) {
			s.state = StateFailed
			s.initErr = err
		} else if s.result != nil {
			s.state = StateReady
		} else {
			s.state = StateEmpty
		}
		s.publish(Update{Generation: gen, State: s.state, Err: err})
		return nil, err
	}

	s.result.Release(s.store)
	mime := s.eng.MIME(opts.Format)
	res := &asset.EncodedResult{
		Data:    out,
		Size:    int64(len(out)),
		Format:  opts.Format,
		MIME:    mime,
		Quality: opts.Quality,
	}
	if s.store != nil {
		res.DisplayURL = s.store.Create(out, mime)
	}
	s.result = res
	s.state = StateReady

	stats := present.NewStats(s.source.Size, res.Size)
	s.logger.Debug("result ready",
		zap.Uint64("gen", gen),
		zap.String("format", res.Format),
		zap.Int("quality", res.Quality),
		zap.Int("saved_percent", stats.SavedPercent),
	)
	snapshot := *res
	s.publish(Update{Generation: gen, State: StateReady, Result: &snapshot, Stats: stats})
	return &snapshot, nil
}

// Result returns a copy of the current result, if any.
func (s *Session) Result() (*asset.EncodedResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, false
	}
	r := *s.result
	return &r, true
}

// Source returns a copy of the loaded source, if any.
func (s *Session) Source() (*asset.SourceAsset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, false
	}
	a := *s.source
	return &a, true
}

// Stats compares the current source and result sizes.
func (s *Session) Stats() (present.Stats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil || s.result == nil {
		return present.Stats{}, false
	}
	return present.NewStats(s.source.Size, s.result.Size), true
}

// Close cancels in-flight work, waits for debounced encodes to drain and
// releases every display URL the session owns. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = StateClosed
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.result.Release(s.store)
	s.source.Release(s.store)
	s.result, s.source = nil, nil
	s.mu.Unlock()

	close(s.updates)
	s.logger.Debug("session closed")
}

func (s *Session) usable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return apperr.ErrSessionClosed
	case s.state == StateFailed:
		return fmt.Errorf("session %s: %w", s.id, s.initErr)
	}
	return nil
}

// publish must be called with s.mu held. Slow readers miss updates
// rather than stall the encoder.
func (s *Session) publish(u Update) {
	if s.closed {
		return
	}
	select {
	case s.updates <- u:
	default:
		s.logger.Debug("update dropped", zap.Uint64("gen", u.Generation), zap.Stringer("state", u.State))
	}
}
