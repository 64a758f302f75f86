// Package seo generates meta tags, robots.txt and sitemap.xml.
package seo

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// Meta is the input of the meta tag generator.
type Meta struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Keywords    string `json:"keywords" yaml:"keywords"`
	Author      string `json:"author" yaml:"author"`
	OGType      string `json:"og_type" yaml:"og_type"`
	URL         string `json:"url" yaml:"url"`
	Image       string `json:"image" yaml:"image"`
	TwitterCard string `json:"twitter_card" yaml:"twitter_card"`
}

func (m Meta) withDefaults() Meta {
	if m.OGType == "" {
		m.OGType = "website"
	}
	if m.TwitterCard == "" {
		m.TwitterCard = "summary_large_image"
	}
	return m
}

// MetaTags renders the primary, Open Graph and Twitter tag blocks.
// Attribute values are HTML-escaped.
func MetaTags(m Meta) string {
	m = m.withDefaults()
	esc := html.EscapeString
	var b strings.Builder

	b.WriteString("<!-- Primary Meta Tags -->\n")
	if m.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", esc(m.Title))
	}
	fmt.Fprintf(&b, "<meta name=\"title\" content=\"%s\">\n", esc(m.Title))
	fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", esc(m.Description))
	if m.Keywords != "" {
		fmt.Fprintf(&b, "<meta name=\"keywords\" content=\"%s\">\n", esc(m.Keywords))
	}
	if m.Author != "" {
		fmt.Fprintf(&b, "<meta name=\"author\" content=\"%s\">\n", esc(m.Author))
	}
	b.WriteString("\n<!-- Open Graph / Facebook -->\n")
	fmt.Fprintf(&b, "<meta property=\"og:type\" content=\"%s\">\n", esc(m.OGType))
	fmt.Fprintf(&b, "<meta property=\"og:url\" content=\"%s\">\n", esc(m.URL))
	fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s\">\n", esc(m.Title))
	fmt.Fprintf(&b, "<meta property=\"og:description\" content=\"%s\">\n", esc(m.Description))
	if m.Image != "" {
		fmt.Fprintf(&b, "<meta property=\"og:image\" content=\"%s\">\n", esc(m.Image))
	}
	b.WriteString("\n<!-- Twitter -->\n")
	fmt.Fprintf(&b, "<meta property=\"twitter:card\" content=\"%s\">\n", esc(m.TwitterCard))
	fmt.Fprintf(&b, "<meta property=\"twitter:url\" content=\"%s\">\n", esc(m.URL))
	fmt.Fprintf(&b, "<meta property=\"twitter:title\" content=\"%s\">\n", esc(m.Title))
	fmt.Fprintf(&b, "<meta property=\"twitter:description\" content=\"%s\">", esc(m.Description))
	if m.Image != "" {
		fmt.Fprintf(&b, "\n<meta property=\"twitter:image\" content=\"%s\">", esc(m.Image))
	}
	return b.String()
}

// RobotsRule is one User-agent group.
type RobotsRule struct {
	UserAgent string   `json:"user_agent" yaml:"user_agent"`
	Allow     []string `json:"allow" yaml:"allow"`
	Disallow  []string `json:"disallow" yaml:"disallow"`
}

// DefaultRobotsRule blocks /cgi-bin/ for every crawler.
var DefaultRobotsRule = RobotsRule{UserAgent: "*", Disallow: []string{"/cgi-bin/"}}

// Robots renders a robots.txt. At least one rule is required; empty
// paths are skipped.
func Robots(rules []RobotsRule, sitemap string) (string, error) {
	if len(rules) == 0 {
		return "", apperr.Validationf("At least one rule is required")
	}
	var b strings.Builder
	for _, r := range rules {
		ua := r.UserAgent
		if ua == "" {
			ua = "*"
		}
		fmt.Fprintf(&b, "User-agent: %s\n", ua)
		for _, p := range r.Disallow {
			if p != "" {
				fmt.Fprintf(&b, "Disallow: %s\n", p)
			}
		}
		for _, p := range r.Allow {
			if p != "" {
				fmt.Fprintf(&b, "Allow: %s\n", p)
			}
		}
		b.WriteString("\n")
	}
	if sitemap != "" {
		fmt.Fprintf(&b, "Sitemap: %s\n", sitemap)
	}
	return strings.TrimSpace(b.String()), nil
}

// SitemapURL is one sitemap entry.
type SitemapURL struct {
	Loc        string `json:"url" yaml:"url" xml:"loc"`
	ChangeFreq string `json:"changefreq" yaml:"changefreq" xml:"changefreq"`
	Priority   string `json:"priority" yaml:"priority" xml:"priority"`
}

// ChangeFreqs are the values crawlers recognise.
var ChangeFreqs = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Sitemap renders a sitemap.xml. Entries without a URL are dropped;
// missing changefreq and priority default to weekly and 0.8.
func Sitemap(urls []SitemapURL) (string, error) {
	set := urlset{NS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: []SitemapURL{}}
	for _, u := range urls {
		if strings.TrimSpace(u.Loc) == "" {
			continue
		}
		if u.ChangeFreq == "" {
			u.ChangeFreq = "weekly"
		}
		if u.Priority == "" {
			u.Priority = "0.8"
		}
		set.URLs = append(set.URLs, u)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(out), nil
}
