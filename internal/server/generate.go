package server

import (
	"strconv"

	"github.com/AnyUserName/stylo-cli/internal/favicon"
	"github.com/AnyUserName/stylo-cli/internal/qr"
	"github.com/AnyUserName/stylo-cli/internal/svgpng"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleQR(c echo.Context) error {
	out, err := qr.Generate(c.FormValue("text"), qr.Options{
		Size:       formInt(c, "size", qr.DefaultSize),
		Background: c.FormValue("bg"),
		Foreground: c.FormValue("fg"),
		Level:      c.FormValue("level"),
	})
	if err != nil {
		return err
	}
	return attachment(c, qr.FileName, "image/png", out)
}

func (s *Server) handleSVG(c echo.Context) error {
	src, err := s.upload(c)
	if err != nil {
		return err
	}
	res, err := svgpng.Convert(c.Request().Context(), s.engine, src.Name, src.Data, formInt(c, "width", svgpng.DefaultWidth))
	if err != nil {
		return err
	}
	h := c.Response().Header()
	h.Set(HeaderWidth, strconv.Itoa(res.Width))
	h.Set(HeaderHeight, strconv.Itoa(res.Height))
	return attachment(c, res.Name, "image/png", res.Data)
}

func (s *Server) handleFavicon(c echo.Context) error {
	src, err := s.upload(c)
	if err != nil {
		return err
	}
	set, err := favicon.Generate(c.Request().Context(), s.engine, src.Data)
	if err != nil {
		return err
	}
	archive, err := set.Zip()
	if err != nil {
		return err
	}
	return attachment(c, favicon.ArchiveName, "application/zip", archive)
}
