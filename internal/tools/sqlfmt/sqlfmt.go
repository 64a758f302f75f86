// Package sqlfmt lays out SQL with one clause per line.
package sqlfmt

import (
	"regexp"
	"sort"
	"strings"
)

// Keywords that start a new line. Multi-word keywords win over their
// single-word suffixes.
var Keywords = []string{
	"SELECT", "FROM", "WHERE", "AND", "OR", "GROUP BY", "ORDER BY",
	"LIMIT", "INSERT INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"JOIN", "LEFT JOIN", "RIGHT JOIN", "INNER JOIN", "ON", "UNION",
	"HAVING", "OFFSET", "AS", "IN", "NOT IN", "BETWEEN", "LIKE", "IS NULL", "IS NOT NULL",
}

var (
	reSpace   = regexp.MustCompile(`\s+`)
	reBlank   = regexp.MustCompile(`\n\s*\n`)
	reKeyword = buildKeywordRegexp()
)

func buildKeywordRegexp() *regexp.Regexp {
	kws := append([]string(nil), Keywords...)
	sort.SliceStable(kws, func(i, j int) bool { return len(kws[i]) > len(kws[j]) })
	for i, k := range kws {
		kws[i] = strings.ReplaceAll(regexp.QuoteMeta(k), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(kws, "|") + `)\b`)
}

// Format collapses whitespace, upper-cases keywords and breaks the line
// before each one.
func Format(sql string) string {
	s := strings.TrimSpace(reSpace.ReplaceAllString(sql, " "))
	if s == "" {
		return ""
	}
	s = reKeyword.ReplaceAllStringFunc(s, func(kw string) string {
		return "\n" + strings.ToUpper(reSpace.ReplaceAllString(kw, " "))
	})
	s = reBlank.ReplaceAllString(s, "\n")
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n")
}
