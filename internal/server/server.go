// Package server exposes the toolkit over a local HTTP API: the tool
// catalog, text tools, one-shot image endpoints, display URLs and a live
// compress session per WebSocket connection.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/blobstore"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/tools"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a Server. Zero values get defaults.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration

	// Defaults for image endpoints and live sessions. A nil Quality
	// selects engine.DefaultQuality; zero is honoured.
	Quality  *int
	Format   string
	Debounce time.Duration

	Logger *zap.Logger
	Engine *engine.Engine
	Store  *blobstore.Store
	Tools  *tools.Registry
}

// Server is the HTTP surface.
type Server struct {
	opts     Options
	echo     *echo.Echo
	engine   *engine.Engine
	store    *blobstore.Store
	tools    *tools.Registry
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New builds a server and registers its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8787"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Quality == nil {
		q := engine.DefaultQuality
		opts.Quality = &q
	}
	if opts.Engine == nil {
		opts.Engine = engine.New(opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = blobstore.New()
	}
	if opts.Tools == nil {
		opts.Tools = tools.NewRegistry()
	}

	s := &Server{
		opts:   opts,
		engine: opts.Engine,
		store:  opts.Store,
		tools:  opts.Tools,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 << 10,
			WriteBufferSize: 32 << 10,
			CheckOrigin:     sameHostOrigin,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	s.echo = e
	s.routes()
	return s
}

// imageRoutes maps the catalog's binary-output tools to their endpoints.
// Text tools are served by /api/text/:tool instead.
var imageRoutes = map[string]string{
	"image-compressor":  "/api/image/compress",
	"image-resizer":     "/api/image/resize",
	"exif-remover":      "/api/image/strip-exif",
	"qr-generator":      "/api/image/qr",
	"svg-to-png":        "/api/image/svg-to-png",
	"favicon-generator": "/api/image/favicon",
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.GET("/tools", s.handleTools)
	api.GET("/tools/:id", s.handleTool)
	api.POST("/text/:tool", s.handleText)
	api.GET("/image/formats", s.handleFormats)

	handlers := map[string]echo.HandlerFunc{
		"image-compressor":  s.handleCompress,
		"image-resizer":     s.handleResize,
		"exif-remover":      s.handleStrip,
		"qr-generator":      s.handleQR,
		"svg-to-png":        s.handleSVG,
		"favicon-generator": s.handleFavicon,
	}
	for id, h := range handlers {
		s.echo.POST(imageRoutes[id], h)
	}

	s.echo.GET("/blob/:id", s.handleBlob)
	s.echo.GET("/ws/compress", s.handleLiveCompress)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves until ctx is cancelled, then shuts down gracefully and
// closes open live sessions.
func (s *Server) Run(ctx context.Context) error {
	if err := s.engine.Init(ctx); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.opts.Addr))
		if err := s.echo.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.closeConns()
		if err := s.echo.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) track(c *websocket.Conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// closeConns ends every live session; hijacked connections are not
// covered by http.Server.Shutdown.
func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.Close()
	}
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) int {
	if errors.Is(err, apperr.ErrNotImage) {
		return http.StatusUnsupportedMediaType
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := statusFor(err), apperr.UserMessage(err)
	var he *echo.HTTPError
	if apperr.KindOf(err) == apperr.KindUnknown && errors.As(err, &he) {
		status, msg = he.Code, fmt.Sprint(he.Message)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorBody{Error: msg})
}
