// Package minify strips comments and whitespace from JavaScript, CSS and
// HTML with regular expressions. It does not parse the input, so string
// literals containing comment markers may be damaged.
package minify

import (
	"regexp"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// Languages the minifier understands.
const (
	JavaScript = "javascript"
	CSS        = "css"
	HTML       = "html"
)

var (
	reCodeComment = regexp.MustCompile(`(?m)/\*[\s\S]*?\*/|([^:]|^)//.*$`)
	reSpace       = regexp.MustCompile(`\s+`)
	reOperator    = regexp.MustCompile(`\s*([{}\[\]():;,+\-*/=><!&|])\s*`)
	reHTMLComment = regexp.MustCompile(`<!--[\s\S]*?-->`)
	reBetweenTags = regexp.MustCompile(`>\s+<`)
)

// Minify compacts code written in lang.
func Minify(lang, code string) (string, error) {
	switch normalize(lang) {
	case JavaScript, CSS:
		s := reCodeComment.ReplaceAllString(code, "$1")
		s = reSpace.ReplaceAllString(s, " ")
		s = reOperator.ReplaceAllString(s, "$1")
		return strings.TrimSpace(s), nil
	case HTML:
		s := reHTMLComment.ReplaceAllString(code, "")
		s = reSpace.ReplaceAllString(s, " ")
		s = reBetweenTags.ReplaceAllString(s, "><")
		return strings.TrimSpace(s), nil
	}
	return "", apperr.Validationf("Unsupported language %q. Choose javascript, css or html.", lang)
}

func normalize(lang string) string {
	switch l := strings.ToLower(strings.TrimSpace(lang)); l {
	case "js":
		return JavaScript
	case "htm":
		return HTML
	default:
		return l
	}
}

// Stats reports the byte size and line count of code.
func Stats(code string) (size, lines int) {
	if code == "" {
		return 0, 0
	}
	return len(code), strings.Count(code, "\n") + 1
}
