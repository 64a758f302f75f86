// Package textdiff compares two texts line by line.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Type classifies one row of a positional diff.
type Type string

const (
	Same    Type = "same"
	Added   Type = "added"
	Removed Type = "removed"
	Changed Type = "changed"
)

// Row pairs line Num of both texts.
type Row struct {
	Type  Type   `json:"type"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	Num   int    `json:"num"`
}

// Stats counts non-identical rows.
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Changed int `json:"changed"`
}

// Compare aligns the two texts by line number. A row whose original line
// is empty counts as added, one whose modified line is empty as removed.
func Compare(a, b string) []Row {
	la := strings.Split(a, "\n")
	lb := strings.Split(b, "\n")
	n := max(len(la), len(lb))

	rows := make([]Row, 0, n)
	for i := range n {
		l1, l2 := at(la, i), at(lb, i)
		r := Row{Line1: l1, Line2: l2, Num: i + 1}
		switch {
		case l1 == l2:
			r.Type = Same
		case l1 == "":
			r.Type = Added
		case l2 == "":
			r.Type = Removed
		default:
			r.Type = Changed
		}
		rows = append(rows, r)
	}
	return rows
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// Summarize counts rows by type.
func Summarize(rows []Row) Stats {
	var s Stats
	for _, r := range rows {
		switch r.Type {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Changed:
			s.Changed++
		}
	}
	return s
}

// Op is the kind of a unified diff line.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

func (o Op) prefix() string {
	switch o {
	case OpInsert:
		return "+"
	case OpDelete:
		return "-"
	}
	return " "
}

// Line is one line of a unified diff.
type Line struct {
	Op   Op
	Text string
}

// Unified computes a minimal line-level edit script between a and b.
func Unified(a, b string) []Line {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	ca, cb, table := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, table)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return out
}

// Render prints lines with +/-/space prefixes.
func Render(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s%s\n", l.Op.prefix(), l.Text)
	}
	return b.String()
}
