// Package textstat counts characters, words, sentences and lines.
package textstat

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	readingWPM  = 200
	speakingWPM = 150
)

var (
	reWhitespace  = regexp.MustCompile(`\s`)
	reSentenceEnd = regexp.MustCompile(`[.!?]+`)
	reParagraph   = regexp.MustCompile(`\n\n+`)
)

// Words holds the word counter figures.
type Words struct {
	Characters        int `json:"characters"`
	CharactersNoSpace int `json:"characters_no_spaces"`
	Words             int `json:"words"`
	Sentences         int `json:"sentences"`
	Paragraphs        int `json:"paragraphs"`
	Lines             int `json:"lines"`
	ReadingMinutes    int `json:"reading_minutes"`
	SpeakingMinutes   int `json:"speaking_minutes"`
}

// CountWords computes the word counter figures for text.
func CountWords(text string) Words {
	trimmed := strings.TrimSpace(text)
	w := Words{
		Characters:        utf8.RuneCountInString(text),
		CharactersNoSpace: utf8.RuneCountInString(reWhitespace.ReplaceAllString(text, "")),
		Words:             len(strings.Fields(trimmed)),
		Lines:             strings.Count(text, "\n") + 1,
	}
	if trimmed != "" {
		w.Sentences = len(reSentenceEnd.FindAllStringIndex(trimmed, -1))
		for _, p := range reParagraph.Split(trimmed, -1) {
			if strings.TrimSpace(p) != "" {
				w.Paragraphs++
			}
		}
	}
	w.ReadingMinutes = int(math.Ceil(float64(w.Words) / readingWPM))
	w.SpeakingMinutes = int(math.Ceil(float64(w.Words) / speakingWPM))
	return w
}

// Lines holds the line counter figures.
type Lines struct {
	Total      int `json:"total"`
	Empty      int `json:"empty"`
	NonEmpty   int `json:"non_empty"`
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

// CountLines computes the line counter figures. Empty text has no lines.
func CountLines(text string) Lines {
	l := Lines{
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}
	if text == "" {
		return l
	}
	for _, line := range strings.Split(text, "\n") {
		l.Total++
		if strings.TrimSpace(line) == "" {
			l.Empty++
		}
	}
	l.NonEmpty = l.Total - l.Empty
	return l
}
