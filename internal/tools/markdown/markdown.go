// Package markdown renders Markdown to HTML with GitHub-flavoured
// extensions and emoji shortcodes.
package markdown

import (
	"bytes"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Options tune rendering.
type Options struct {
	// RawHTML passes inline HTML through instead of omitting it.
	RawHTML bool
	// HeadingIDs adds id attributes to headings.
	HeadingIDs bool
}

func newRenderer(opts Options) goldmark.Markdown {
	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, emoji.Emoji),
		goldmark.WithRendererOptions(html.WithXHTML()),
	}
	if opts.RawHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	if opts.HeadingIDs {
		rendererOpts = append(rendererOpts, goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	}
	return goldmark.New(rendererOpts...)
}

// ToHTML converts src. Blank input renders as an empty string.
func ToHTML(src string, opts Options) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := newRenderer(opts).Convert([]byte(src), &buf); err != nil {
		return "", apperr.Validation(err, "The Markdown could not be converted.")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
