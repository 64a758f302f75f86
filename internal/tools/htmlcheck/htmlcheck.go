// Package htmlcheck lints HTML markup for common accessibility and
// structure problems and re-indents it.
package htmlcheck

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Severity of an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding. Line is 1-based; 0 means document-wide.
type Issue struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"type"`
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Validate returns every issue found in markup, warnings first.
func Validate(markup string) []Issue {
	if markup == "" {
		return nil
	}
	var issues []Issue

	for i, line := range strings.Split(markup, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "<img") && !strings.Contains(lower, "alt=") {
			issues = append(issues, Issue{Line: i + 1, Message: `Image tag missing "alt" attribute.`, Severity: SeverityWarning})
		}
		if strings.Contains(lower, "<html") && !strings.Contains(lower, "lang=") {
			issues = append(issues, Issue{Line: i + 1, Message: `HTML tag missing "lang" attribute.`, Severity: SeverityWarning})
		}
	}

	opening, closing, err := countTags(markup)
	if err != nil {
		issues = append(issues, Issue{
			Message:  "Structural error: Possible unclosed tag or invalid hierarchy. " + err.Error(),
			Severity: SeverityError,
		})
	}
	switch balance := opening - closing; {
	case balance > 0:
		issues = append(issues, Issue{Message: fmt.Sprintf("Tag mismatch: Found %d more opening tags than closing tags.", balance), Severity: SeverityError})
	case balance < 0:
		issues = append(issues, Issue{Message: fmt.Sprintf("Tag mismatch: Found %d more closing tags than opening tags.", -balance), Severity: SeverityError})
	}
	return issues
}

// countTags tokenizes markup and counts non-void opening and closing
// tags. Self-closing and void elements are skipped.
func countTags(markup string) (opening, closing int, err error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return opening, closing, nil
			}
			return opening, closing, z.Err()
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				opening++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				closing++
			}
		}
	}
}

var (
	reTagBoundary = regexp.MustCompile(`>\s*<`)
	reClosing     = regexp.MustCompile(`^/\w`)
	reOpening     = regexp.MustCompile(`^<?\w[^>]*[^/]$`)
)

// Format puts each tag on its own line and indents nested elements by
// two spaces. It is a textual pass and does not repair bad markup.
func Format(markup string) string {
	if markup == "" {
		return ""
	}
	const tab = "  "
	var b strings.Builder
	indent := ""
	for _, el := range reTagBoundary.Split(markup, -1) {
		if reClosing.MatchString(el) && len(indent) >= len(tab) {
			indent = indent[len(tab):]
		}
		b.WriteString(indent + "<" + el + ">\n")
		if reOpening.MatchString(el) && !hasAnyPrefix(el, "input", "img", "br", "hr") {
			indent += tab
		}
	}
	out := b.String()
	if len(out) < 3 {
		return out
	}
	return out[1 : len(out)-2]
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
