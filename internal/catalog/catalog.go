// Package catalog is the static registry of tools. It is built once at
// init and never mutated; accessors hand out copies.
package catalog

import "strings"

// Category groups tools on the home page.
type Category string

const (
	ImageTools Category = "Image Tools"
	TextTools  Category = "Text Tools"
	CodeTools  Category = "Code Tools"
	Converters Category = "Converters"
	Security   Category = "Security"
	Utility    Category = "Utility"
	SEOTools   Category = "SEO Tools"
)

// All is the pseudo-category that matches every tool.
const All Category = "All"

var categories = []Category{ImageTools, TextTools, CodeTools, Converters, Security, Utility, SEOTools}

const (
	defaultResults = 8
	maxResults     = 12
)

// Entry is one tool's metadata.
type Entry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Tags        []string `json:"tags"`
	Available   bool     `json:"available"`
	New         bool     `json:"new,omitempty"`
	Native      bool     `json:"native,omitempty"` // backed by the re-encode engine
}

// Route is the path the tool is served under.
func (e Entry) Route() string {
	return "/" + e.ID
}

var byID = func() map[string]int {
	m := make(map[string]int, len(entries))
	for i, e := range entries {
		m[e.ID] = i
	}
	return m
}()

// Entries returns every tool in display order.
func Entries() []Entry {
	return clone(entries)
}

// Get looks up a tool by id.
func Get(id string) (Entry, bool) {
	i, ok := byID[id]
	if !ok {
		return Entry{}, false
	}
	return copyEntry(entries[i]), true
}

// Categories lists the categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ByCategory filters by exact category; All returns everything.
func ByCategory(c Category) []Entry {
	if c == All {
		return Entries()
	}
	var out []Entry
	for _, e := range entries {
		if e.Category == c {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

// Available returns the tools that can be used.
func Available() []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Available {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

// Search matches query case-insensitively against name, description,
// category and tags. A blank query returns the first few tools.
func Search(query string) []Entry {
	if strings.TrimSpace(query) == "" {
		return clone(entries[:defaultResults])
	}
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range entries {
		if matches(e, q) {
			out = append(out, copyEntry(e))
			if len(out) == maxResults {
				break
			}
		}
	}
	return out
}

// Filter narrows to category c first, then applies query the way Search
// does. An empty category or All keeps every category.
func Filter(c Category, query string) []Entry {
	if strings.TrimSpace(query) == "" {
		if c == "" {
			return Entries()
		}
		return ByCategory(c)
	}
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range entries {
		if c != "" && c != All && e.Category != c {
			continue
		}
		if matches(e, q) {
			out = append(out, copyEntry(e))
			if len(out) == maxResults {
				break
			}
		}
	}
	return out
}

func matches(e Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(string(e.Category)), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func clone(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = copyEntry(e)
	}
	return out
}

func copyEntry(e Entry) Entry {
	e.Tags = append([]string(nil), e.Tags...)
	return e
}
