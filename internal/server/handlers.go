package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/blobstore"
	"github.com/AnyUserName/stylo-cli/internal/catalog"
	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/resize"
	"github.com/AnyUserName/stylo-cli/internal/scrub"
	"github.com/AnyUserName/stylo-cli/internal/tools"
	"github.com/labstack/echo/v4"
)

// Response headers carrying compressor statistics.
const (
	HeaderOriginalSize   = "X-Stylo-Original-Size"
	HeaderCompressedSize = "X-Stylo-Compressed-Size"
	HeaderSavedPercent   = "X-Stylo-Saved-Percent"
	HeaderWidth          = "X-Stylo-Width"
	HeaderHeight         = "X-Stylo-Height"
)

func (s *Server) handleTools(c echo.Context) error {
	q, cat := c.QueryParam("q"), c.QueryParam("category")
	if cat == "" && q != "" {
		return c.JSON(http.StatusOK, catalog.Search(q))
	}
	return c.JSON(http.StatusOK, catalog.Filter(catalog.Category(cat), q))
}

func (s *Server) handleTool(c echo.Context) error {
	e, ok := catalog.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) handleText(c echo.Context) error {
	var req tools.Request
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "Request body must be JSON with an \"input\" field.")
	}
	res, err := s.tools.Run(c.Request().Context(), c.Param("tool"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type formatsBody struct {
	Formats []string        `json:"formats"`
	Default string          `json:"default"`
	Presets []resize.Preset `json:"presets"`
}

func (s *Server) handleFormats(c echo.Context) error {
	return c.JSON(http.StatusOK, formatsBody{
		Formats: s.engine.Formats(),
		Default: encoder.DefaultFormat,
		Presets: resize.Presets(),
	})
}

// upload ingests the multipart "file" field without minting a display
// URL; one-shot endpoints answer with the bytes themselves.
func (s *Server) upload(c echo.Context) (*asset.SourceAsset, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, apperr.Validation(err, `Upload an image in the "file" field.`)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Transient(err, "The upload could not be read.")
	}
	defer f.Close()
	return asset.Ingest(fh.Filename, fh.Header.Get(echo.HeaderContentType), f, nil)
}

func formInt(c echo.Context, key string, def int) int {
	if v := c.FormValue(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func attachment(c echo.Context, name, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	return c.Blob(http.StatusOK, contentType, data)
}

func (s *Server) handleCompress(c echo.Context) error {
	src, err := s.upload(c)
	if err != nil {
		return err
	}
	format := c.FormValue("format")
	if format == "" {
		format = s.opts.Format
	}
	format, _ = encoder.Canonical(format)
	quality := encoder.ClampQuality(formInt(c, "quality", *s.opts.Quality))

	out, err := s.engine.Encode(c.Request().Context(), src.Data, engine.Options{Quality: quality, Format: format})
	if err != nil {
		return err
	}
	stats := present.NewStats(src.Size, int64(len(out)))

	h := c.Response().Header()
	h.Set(HeaderOriginalSize, strconv.FormatInt(stats.Original, 10))
	h.Set(HeaderCompressedSize, strconv.FormatInt(stats.Compressed, 10))
	h.Set(HeaderSavedPercent, strconv.Itoa(stats.SavedPercent))
	return attachment(c, present.DownloadName(src.Name, s.engine.Extension(format)), s.engine.MIME(format), out)
}

func (s *Server) handleResize(c echo.Context) error {
	src, err := s.upload(c)
	if err != nil {
		return err
	}
	surface, err := s.engine.Decode(src.Data)
	if err != nil {
		return err
	}
	unlocked, _ := strconv.ParseBool(c.FormValue("unlocked"))
	dims, err := resize.Plan(surface.Width, surface.Height, resize.Target{
		Preset:   c.FormValue("preset"),
		Width:    formInt(c, "width", 0),
		Height:   formInt(c, "height", 0),
		Unlocked: unlocked,
	})
	if err != nil {
		return err
	}
	format := c.FormValue("format")
	if format == "" {
		format = resize.DefaultFormat
	}
	out, err := resize.Resize(c.Request().Context(), s.engine, src.Data, resize.Options{
		Width:    dims.Width,
		Height:   dims.Height,
		Rotation: formInt(c, "rotation", 0),
		Format:   format,
		Quality:  formInt(c, "quality", resize.DefaultQuality),
	})
	if err != nil {
		return err
	}
	h := c.Response().Header()
	h.Set(HeaderWidth, strconv.Itoa(out.Width))
	h.Set(HeaderHeight, strconv.Itoa(out.Height))
	return attachment(c, present.ResizedName(src.Name, out.Format), out.MIME, out.Data)
}

func (s *Server) handleStrip(c echo.Context) error {
	src, err := s.upload(c)
	if err != nil {
		return err
	}
	res, err := scrub.Strip(c.Request().Context(), s.engine, src)
	if err != nil {
		return err
	}
	return attachment(c, res.Name, res.MIME, res.Data)
}

func (s *Server) handleBlob(c echo.Context) error {
	b, err := s.store.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Display URL expired")
	}
	h := c.Response().Header()
	h.Set(echo.HeaderCacheControl, "private, max-age=3600")
	h.Set("ETag", b.ETag)
	if c.Request().Header.Get("If-None-Match") == b.ETag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, b.MIME, b.Data)
}

// displayPath turns a display URL into the route serving it.
func displayPath(url string) string { return blobstore.Path(url) }
