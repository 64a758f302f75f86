package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaTags(t *testing.T) {
	out := MetaTags(Meta{
		Title:       "Stylo & Co",
		Description: "Tools",
		URL:         "https://example.com",
		Image:       "https://example.com/og.png",
	})
	assert.True(t, strings.HasPrefix(out, "<!-- Primary Meta Tags -->\n<title>Stylo &amp; Co</title>\n"))
	assert.Contains(t, out, `<meta property="og:type" content="website">`)
	assert.Contains(t, out, `<meta property="twitter:card" content="summary_large_image">`)
	assert.Contains(t, out, `<meta property="og:image" content="https://example.com/og.png">`)
	assert.True(t, strings.HasSuffix(out, `<meta property="twitter:image" content="https://example.com/og.png">`))
	assert.NotContains(t, out, "keywords")
}

func TestMetaTags_NoTitle(t *testing.T) {
	out := MetaTags(Meta{})
	assert.NotContains(t, out, "<title>")
	assert.Contains(t, out, `<meta name="title" content="">`)
}

func TestRobots(t *testing.T) {
	out, err := Robots([]RobotsRule{
		DefaultRobotsRule,
		{UserAgent: "Googlebot", Allow: []string{"/", ""}, Disallow: []string{"/private"}},
	}, "https://example.com/sitemap.xml")
	require.NoError(t, err)
	want := "User-agent: *\nDisallow: /cgi-bin/\n\nUser-agent: Googlebot\nDisallow: /private\nAllow: /\n\nSitemap: https://example.com/sitemap.xml"
	assert.Equal(t, want, out)

	_, err = Robots(nil, "")
	assert.Error(t, err)
}

func TestSitemap(t *testing.T) {
	out, err := Sitemap([]SitemapURL{
		{Loc: "https://example.com/", Priority: "1.0", ChangeFreq: "daily"},
		{Loc: ""},
		{Loc: "https://example.com/a?x=1&y=2"},
	})
	require.NoError(t, err)
	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/</loc>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
  <url>
    <loc>https://example.com/a?x=1&amp;y=2</loc>
    <changefreq>weekly</changefreq>
    <priority>0.8</priority>
  </url>
</urlset>`
	assert.Equal(t, want, out)
}
