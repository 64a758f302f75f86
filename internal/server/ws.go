package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/session"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Client → server commands. A binary frame is shorthand for a load of
// an unnamed file.
type liveCommand struct {
	Type    string `json:"type"` // load | quality | format | encode
	Name    string `json:"name,omitempty"`
	MIME    string `json:"mime,omitempty"`
	Data    []byte `json:"data,omitempty"` // base64 in JSON
	Quality int    `json:"quality,omitempty"`
	Format  string `json:"format,omitempty"`
}

// Server → client events.
type liveEvent struct {
	Type       string         `json:"type"` // hello | update | error
	Session    string         `json:"session,omitempty"`
	Formats    []string       `json:"formats,omitempty"`
	Generation uint64         `json:"generation,omitempty"`
	State      string         `json:"state,omitempty"`
	Result     *liveResult    `json:"result,omitempty"`
	Stats      *present.Stats `json:"stats,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type liveResult struct {
	URL          string `json:"url"`
	Format       string `json:"format"`
	MIME         string `json:"mime"`
	Size         int64  `json:"size"`
	Quality      int    `json:"quality"`
	DownloadName string `json:"download_name"`
}

func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// handleLiveCompress runs one session for the lifetime of the
// connection. Quality and format changes are debounced by the session;
// every state change is pushed back as an update event.
func (s *Server) handleLiveCompress(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}
	s.track(conn)
	defer s.untrack(conn)
	defer conn.Close()

	sess := session.New(c.Request().Context(), s.engine, s.store, session.Options{
		Quality:  s.opts.Quality,
		Format:   s.opts.Format,
		Debounce: s.opts.Debounce,
		Logger:   s.logger,
	})
	log := s.logger.With(zap.String("session", sess.ID()))
	log.Debug("live session opened")

	var wmu sync.Mutex
	write := func(ev liveEvent) error {
		wmu.Lock()
		defer wmu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(ev)
	}

	hello := liveEvent{Type: "hello", Session: sess.ID(), Formats: s.engine.Formats(), State: sess.State().String()}
	if sess.State() == session.StateFailed {
		hello.Error = apperr.ErrEngineUnavailable.UserMsg
	}
	if err := write(hello); err != nil {
		sess.Close()
		return nil
	}

	pumped := make(chan struct{})
	go func() {
		defer close(pumped)
		for u := range sess.Updates() {
			if err := write(s.updateEvent(sess, u)); err != nil {
				log.Debug("update write failed", zap.Error(err))
			}
		}
	}()

	stopPing := make(chan struct{})
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-stopPing:
				return
			case <-t.C:
				wmu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				wmu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("websocket read", zap.Error(err))
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		cmd := liveCommand{Type: "load", Name: "upload", Data: data}
		if mt == websocket.TextMessage {
			cmd = liveCommand{}
			if err := json.Unmarshal(data, &cmd); err != nil {
				write(liveEvent{Type: "error", Error: "Commands must be JSON objects."})
				continue
			}
		}
		if err := dispatch(c.Request().Context(), sess, cmd); reportable(err, sess) {
			write(liveEvent{Type: "error", Error: apperr.UserMessage(err)})
		}
	}

	close(stopPing)
	sess.Close()
	<-pumped
	log.Debug("live session closed")
	return nil
}

var errUnknownCommand = errors.New("unknown command")

func dispatch(ctx context.Context, sess *session.Session, cmd liveCommand) error {
	switch cmd.Type {
	case "load":
		_, err := sess.Load(cmd.Name, cmd.MIME, bytes.NewReader(cmd.Data))
		return err
	case "quality":
		return sess.SetQuality(cmd.Quality)
	case "format":
		return sess.SetFormat(cmd.Format)
	case "encode":
		_, err := sess.Encode(ctx)
		return err
	default:
		return apperr.Validation(fmt.Errorf("%w %q", errUnknownCommand, cmd.Type),
			fmt.Sprintf("Unknown command %q.", cmd.Type))
	}
}

// reportable filters command errors the client should hear about
// directly. Rejected drops are ignored, stale results are expected, and
// encode failures already reach the client as update events.
func reportable(err error, sess *session.Session) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, errUnknownCommand) ||
		errors.Is(err, session.ErrNoSource) ||
		errors.Is(err, apperr.ErrSessionClosed) ||
		sess.State() == session.StateFailed
}

func (s *Server) updateEvent(sess *session.Session, u session.Update) liveEvent {
	ev := liveEvent{Type: "update", Generation: u.Generation, State: u.State.String()}
	if u.Err != nil {
		ev.Error = apperr.UserMessage(u.Err)
	}
	if u.Result != nil {
		name := "image"
		if src, ok := sess.Source(); ok {
			name = src.Name
		}
		ev.Result = &liveResult{
			URL:          displayPath(u.Result.DisplayURL),
			Format:       u.Result.Format,
			MIME:         u.Result.MIME,
			Size:         u.Result.Size,
			Quality:      u.Result.Quality,
			DownloadName: present.DownloadName(name, s.engine.Extension(u.Result.Format)),
		}
		stats := u.Stats
		ev.Stats = &stats
		ev.Summary = stats.Summary()
	}
	return ev
}
