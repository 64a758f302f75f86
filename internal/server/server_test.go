package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/blobstore"
	"github.com/AnyUserName/stylo-cli/internal/catalog"
	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8((x ^ y) * 3), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	eng := engine.NewWithRegistry(encoder.NewRegistryWith(&encoder.JPEGEncoder{}, &encoder.PNGEncoder{}), nil)
	srv := New(Options{
		Engine:   eng,
		Store:    blobstore.New(),
		Format:   "jpeg",
		Debounce: 10 * time.Millisecond,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func multipartBody(t *testing.T, name string, data []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeJSON(t *testing.T, r io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(v))
}

func TestToolsEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/tools")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []catalog.Entry
	decodeJSON(t, resp.Body, &all)
	assert.Len(t, all, len(catalog.Entries()))

	resp, err = http.Get(ts.URL + "/api/tools?q=base64")
	require.NoError(t, err)
	defer resp.Body.Close()
	var found []catalog.Entry
	decodeJSON(t, resp.Body, &found)
	ids := make([]string, 0, len(found))
	for _, e := range found {
		ids = append(ids, e.ID)
	}
	assert.Contains(t, ids, "base64")

	resp, err = http.Get(ts.URL + "/api/tools/no-such-tool")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body errorBody
	decodeJSON(t, resp.Body, &body)
	assert.Equal(t, "Tool not found", body.Error)
}

func TestTextEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/text/base64", "application/json", strings.NewReader(`{"input":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Output string `json:"output"`
	}
	decodeJSON(t, resp.Body, &out)
	assert.Equal(t, "aGk=", out.Output)

	resp, err = http.Post(ts.URL+"/api/text/base64", "application/json",
		strings.NewReader(`{"input":"aGk=","options":{"action":"decode"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	decodeJSON(t, resp.Body, &out)
	assert.Equal(t, "hi", out.Output)

	resp, err = http.Post(ts.URL+"/api/text/nope", "application/json", strings.NewReader(`{"input":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompressEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	src := testPNG(t, 64, 48)

	body, ct := multipartBody(t, "photo.png", src, map[string]string{"quality": "60"})
	resp, err := http.Post(ts.URL+"/api/image/compress", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, len(src), mustAtoi(t, resp.Header.Get(HeaderOriginalSize)))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "optimized-photo.jpg")

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, len(out), mustAtoi(t, resp.Header.Get(HeaderCompressedSize)))
	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestCompressRejectsNonImage(t *testing.T) {
	_, ts := newTestServer(t)
	body, ct := multipartBody(t, "notes.txt", []byte("just some text"), nil)
	resp, err := http.Post(ts.URL+"/api/image/compress", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	var eb errorBody
	decodeJSON(t, resp.Body, &eb)
	assert.Equal(t, "Please upload an image file.", eb.Error)
}

func TestCompressMissingFile(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/image/compress", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResizeEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	body, ct := multipartBody(t, "wide.png", testPNG(t, 80, 40), map[string]string{"width": "40"})
	resp, err := http.Post(ts.URL+"/api/image/resize", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "40", resp.Header.Get(HeaderWidth))
	assert.Equal(t, "20", resp.Header.Get(HeaderHeight))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestBlobEndpoint(t *testing.T) {
	srv, ts := newTestServer(t)
	url := srv.store.Create([]byte("payload"), "image/png")

	resp, err := http.Get(ts.URL + displayPath(url))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "payload", string(data))

	req, _ := http.NewRequest(http.MethodGet, ts.URL+displayPath(url), nil)
	req.Header.Set("If-None-Match", etag)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	srv.store.Release(url)
	resp, err = http.Get(ts.URL + displayPath(url))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func readEvent(t *testing.T, conn *websocket.Conn) liveEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev liveEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

// awaitReady skips encoding updates until a result lands.
func awaitReady(t *testing.T, conn *websocket.Conn) liveEvent {
	t.Helper()
	for {
		ev := readEvent(t, conn)
		require.NotEqual(t, "error", ev.Type, ev.Error)
		if ev.Type == "update" && ev.State == "ready" && ev.Result != nil {
			return ev
		}
	}
}

func TestLiveCompress(t *testing.T) {
	srv, ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/compress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	hello := readEvent(t, conn)
	assert.Equal(t, "hello", hello.Type)
	assert.NotEmpty(t, hello.Session)
	assert.Equal(t, "empty", hello.State)
	assert.ElementsMatch(t, []string{"jpeg", "png"}, hello.Formats)

	// Encoding before a load is a protocol error the client hears about.
	require.NoError(t, conn.WriteJSON(liveCommand{Type: "encode"}))
	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev.Type)
	assert.Equal(t, "Load an image first.", ev.Error)

	src := testPNG(t, 32, 32)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, src))
	ready := awaitReady(t, conn)
	assert.Equal(t, "jpeg", ready.Result.Format)
	assert.Equal(t, "optimized-upload.jpg", ready.Result.DownloadName)
	require.NotNil(t, ready.Stats)
	assert.Equal(t, int64(len(src)), ready.Stats.Original)

	resp, err := http.Get(ts.URL + ready.Result.URL)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ready.Result.Size, int64(len(data)))

	require.NoError(t, conn.WriteJSON(liveCommand{Type: "format", Format: "png"}))
	ready = awaitReady(t, conn)
	assert.Equal(t, "png", ready.Result.Format)
	assert.Equal(t, "image/png", ready.Result.MIME)

	// A non-image drop is ignored and the previous result stays.
	require.NoError(t, conn.WriteJSON(liveCommand{Type: "load", Name: "a.txt", Data: []byte("hello")}))
	require.NoError(t, conn.WriteJSON(liveCommand{Type: "bogus"}))
	ev = readEvent(t, conn)
	assert.Equal(t, "error", ev.Type)
	assert.Contains(t, ev.Error, "bogus")

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return srv.store.Live() == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestSameHostOrigin(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://127.0.0.1:8787/ws/compress", nil)
	assert.True(t, sameHostOrigin(r))
	r.Header.Set("Origin", "http://127.0.0.1:8787")
	assert.True(t, sameHostOrigin(r))
	r.Header.Set("Origin", "http://evil.example")
	assert.False(t, sameHostOrigin(r))
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err, "header %q", s)
	return n
}

func TestNew_QualityDefaults(t *testing.T) {
	zero := 0
	srv := New(Options{Quality: &zero})
	assert.Equal(t, 0, *srv.opts.Quality)
	assert.Equal(t, engine.DefaultQuality, *New(Options{}).opts.Quality)
}
