// Package regextest runs a pattern against sample text and reports the
// matches.
package regextest

import (
	"regexp"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// Markers wrap each match in Result.Highlighted.
const (
	MarkOpen  = "[[MATCH]]"
	MarkClose = "[[/MATCH]]"
)

// Match is one match with its byte offset and capture groups.
type Match struct {
	Text   string   `json:"text"`
	Index  int      `json:"index"`
	Groups []string `json:"groups,omitempty"`
}

// Result of running a pattern.
type Result struct {
	Matches     []Match `json:"matches"`
	Highlighted string  `json:"highlighted"`
}

// Compile builds a regexp from a pattern and a flag string. Flags: g
// (all matches), i (case-insensitive), m (multi-line anchors), s (dot
// matches newline).
func Compile(pattern, flags string) (*regexp.Regexp, bool, error) {
	var prefix strings.Builder
	global := false
	for _, f := range flags {
		switch f {
		case 'g':
			global = true
		case 'i', 'm', 's':
			prefix.WriteRune(f)
		default:
			return nil, false, apperr.Validationf("Invalid flag %q", string(f))
		}
	}
	expr := pattern
	if prefix.Len() > 0 {
		expr = "(?" + prefix.String() + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false, apperr.Validation(err, err.Error())
	}
	return re, global, nil
}

// Run matches pattern against text. Without the g flag only the first
// match is reported and highlighted.
func Run(pattern, flags, text string) (Result, error) {
	if pattern == "" {
		return Result{Matches: []Match{}, Highlighted: text}, nil
	}
	re, global, err := Compile(pattern, flags)
	if err != nil {
		return Result{Matches: []Match{}, Highlighted: text}, err
	}

	n := 1
	if global {
		n = -1
	}
	locs := re.FindAllStringSubmatchIndex(text, n)

	res := Result{Matches: make([]Match, 0, len(locs))}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		m := Match{Text: text[loc[0]:loc[1]], Index: loc[0]}
		for g := 2; g < len(loc); g += 2 {
			if loc[g] < 0 {
				m.Groups = append(m.Groups, "")
				continue
			}
			m.Groups = append(m.Groups, text[loc[g]:loc[g+1]])
		}
		res.Matches = append(res.Matches, m)

		b.WriteString(text[last:loc[0]])
		b.WriteString(MarkOpen)
		b.WriteString(m.Text)
		b.WriteString(MarkClose)
		last = loc[1]
	}
	b.WriteString(text[last:])
	res.Highlighted = b.String()
	return res, nil
}
