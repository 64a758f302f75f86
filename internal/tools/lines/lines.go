// Package lines works on text one line at a time: de-duplication,
// sorting and whitespace trimming.
package lines

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DedupeOptions controls Dedupe. The zero value is not the default; use
// DefaultDedupe.
type DedupeOptions struct {
	CaseSensitive bool
	TrimLines     bool
	RemoveEmpty   bool
}

// DefaultDedupe enables every option.
var DefaultDedupe = DedupeOptions{CaseSensitive: true, TrimLines: true, RemoveEmpty: true}

// DedupeResult is the surviving lines plus counts.
type DedupeResult struct {
	Lines         []string `json:"lines"`
	Count         int      `json:"count"`
	OriginalCount int      `json:"original_count"`
}

// Removed is the number of lines dropped.
func (r DedupeResult) Removed() int { return r.OriginalCount - r.Count }

// Text joins the surviving lines.
func (r DedupeResult) Text() string { return strings.Join(r.Lines, "\n") }

// Dedupe drops repeated lines, keeping the first occurrence in its
// original position.
func Dedupe(text string, opts DedupeOptions) DedupeResult {
	if text == "" {
		return DedupeResult{Lines: []string{}}
	}
	all := strings.Split(text, "\n")
	res := DedupeResult{OriginalCount: len(all), Lines: make([]string, 0, len(all))}

	seen := make(map[string]struct{}, len(all))
	for _, line := range all {
		if opts.TrimLines {
			line = strings.TrimSpace(line)
		}
		if opts.RemoveEmpty && line == "" {
			continue
		}
		key := line
		if !opts.CaseSensitive {
			key = strings.ToLower(line)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		res.Lines = append(res.Lines, line)
	}
	res.Count = len(res.Lines)
	return res
}

// SortNatural orders lines for humans (case and accents compare the way
// a dictionary does), ascending or descending.
func SortNatural(in []string, desc bool) []string {
	out := slices.Clone(in)
	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return c.CompareString(out[i], out[j]) > 0
		}
		return c.CompareString(out[i], out[j]) < 0
	})
	return out
}

var (
	reAnySpace = regexp.MustCompile(`\s`)
	reSpaceRun = regexp.MustCompile(`\s+`)
)

var trimOps = map[string]func(string) string{
	"trim":       strings.TrimSpace,
	"trim-start": func(s string) string { return strings.TrimLeft(s, " \t\r\n\v\f") },
	"trim-end":   func(s string) string { return strings.TrimRight(s, " \t\r\n\v\f") },
	"no-spaces":  func(s string) string { return reAnySpace.ReplaceAllString(s, "") },
	"single-spaces": func(s string) string {
		return reSpaceRun.ReplaceAllString(s, " ")
	},
	"remove-empty": func(s string) string {
		var kept []string
		for _, l := range strings.Split(s, "\n") {
			if strings.TrimSpace(l) != "" {
				kept = append(kept, l)
			}
		}
		return strings.Join(kept, "\n")
	},
	"unique": func(s string) string {
		return Dedupe(s, DedupeOptions{CaseSensitive: true}).Text()
	},
	"sort-asc": func(s string) string {
		ls := strings.Split(s, "\n")
		sort.Strings(ls)
		return strings.Join(ls, "\n")
	},
	"sort-desc": func(s string) string {
		ls := strings.Split(s, "\n")
		sort.Sort(sort.Reverse(sort.StringSlice(ls)))
		return strings.Join(ls, "\n")
	},
	"reverse": func(s string) string {
		ls := strings.Split(s, "\n")
		slices.Reverse(ls)
		return strings.Join(ls, "\n")
	},
}

// TrimOps lists the string trimmer operations.
func TrimOps() []string {
	out := make([]string, 0, len(trimOps))
	for k := range trimOps {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Trim applies one string trimmer operation.
func Trim(op, text string) (string, error) {
	fn, ok := trimOps[op]
	if !ok {
		return "", apperr.Validationf("Unknown operation %q. Choose one of: %s.", op, strings.Join(TrimOps(), ", "))
	}
	return fn(text), nil
}
