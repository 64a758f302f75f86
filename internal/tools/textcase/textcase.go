// Package textcase converts text between letter-case conventions and
// offers a few whitespace and character clean-ups.
package textcase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

var (
	reTitleWord   = regexp.MustCompile(`\w\S*`)
	reSentence    = regexp.MustCompile(`(^\s*\w|[.!?]\s*\w)`)
	reCamelSep    = regexp.MustCompile(`[^a-zA-Z0-9]+(.)`)
	rePascalStart = regexp.MustCompile(`(?:^\w|[A-Z]|\b\w)`)
	reSpaces      = regexp.MustCompile(`\s+`)
	reNotSnake    = regexp.MustCompile(`[^a-z0-9_]`)
	reNotKebab    = regexp.MustCompile(`[^a-z0-9-]`)
	reNotConstant = regexp.MustCompile(`[^A-Z0-9_]`)
	reLineBreaks  = regexp.MustCompile(`\n+`)
	reDigits      = regexp.MustCompile(`[0-9]`)
	rePunctuation = regexp.MustCompile(`[^\w\s]`)
)

func Upper(s string) string { return strings.ToUpper(s) }
func Lower(s string) string { return strings.ToLower(s) }

// Title capitalises each word and lowercases the rest of it.
func Title(s string) string {
	return reTitleWord.ReplaceAllStringFunc(s, func(w string) string {
		r, n := utf8.DecodeRuneInString(w)
		return string(unicode.ToUpper(r)) + strings.ToLower(w[n:])
	})
}

// Sentence lowercases s and capitalises the first letter of each sentence.
func Sentence(s string) string {
	return reSentence.ReplaceAllStringFunc(strings.ToLower(s), strings.ToUpper)
}

// Camel joins words as helloWorld.
func Camel(s string) string {
	return reCamelSep.ReplaceAllStringFunc(strings.ToLower(s), func(m string) string {
		r, _ := utf8.DecodeLastRuneInString(m)
		return string(unicode.ToUpper(r))
	})
}

// Pascal joins words as HelloWorld. Existing capitals are kept.
func Pascal(s string) string {
	return reSpaces.ReplaceAllString(rePascalStart.ReplaceAllStringFunc(s, strings.ToUpper), "")
}

// Snake joins words as hello_world.
func Snake(s string) string {
	return reNotSnake.ReplaceAllString(reSpaces.ReplaceAllString(strings.ToLower(s), "_"), "")
}

// Kebab joins words as hello-world.
func Kebab(s string) string {
	return reNotKebab.ReplaceAllString(reSpaces.ReplaceAllString(strings.ToLower(s), "-"), "")
}

// Constant joins words as HELLO_WORLD.
func Constant(s string) string {
	return reNotConstant.ReplaceAllString(reSpaces.ReplaceAllString(strings.ToUpper(s), "_"), "")
}

// Alternating lowercases even positions and uppercases odd ones.
func Alternating(s string) string {
	rs := []rune(s)
	for i, r := range rs {
		if i%2 == 1 {
			rs[i] = unicode.ToUpper(r)
		} else {
			rs[i] = unicode.ToLower(r)
		}
	}
	return string(rs)
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

// RemoveExtraSpaces collapses all whitespace runs to one space.
func RemoveExtraSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// RemoveLineBreaks joins lines with a space.
func RemoveLineBreaks(s string) string { return reLineBreaks.ReplaceAllString(s, " ") }

// RemoveNumbers drops ASCII digits.
func RemoveNumbers(s string) string { return reDigits.ReplaceAllString(s, "") }

// RemovePunctuation drops everything but word characters and whitespace.
func RemovePunctuation(s string) string { return rePunctuation.ReplaceAllString(s, "") }

var modes = map[string]func(string) string{
	"upper":        Upper,
	"lower":        Lower,
	"title":        Title,
	"sentence":     Sentence,
	"camel":        Camel,
	"pascal":       Pascal,
	"snake":        Snake,
	"kebab":        Kebab,
	"constant":     Constant,
	"alternating":  Alternating,
	"reverse":      Reverse,
	"extra-spaces": RemoveExtraSpaces,
	"line-breaks":  RemoveLineBreaks,
	"numbers":      RemoveNumbers,
	"punctuation":  RemovePunctuation,
}

// Modes lists the accepted mode names.
func Modes() []string {
	out := make([]string, 0, len(modes))
	for m := range modes {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Apply runs the named conversion. "uppercase", "camelcase" and friends
// are accepted as aliases.
func Apply(mode, s string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(mode))
	if fn, ok := modes[key]; ok {
		return fn(s), nil
	}
	if fn, ok := modes[strings.TrimSuffix(key, "case")]; ok {
		return fn(s), nil
	}
	return "", apperr.Validationf("Unknown conversion %q. Choose one of: %s.", mode, strings.Join(Modes(), ", "))
}
