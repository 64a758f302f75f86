// Package lorem generates placeholder text.
package lorem

import (
	"math/rand/v2"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// Classic opens every generated text.
const Classic = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."

// Units of generation.
const (
	Words      = "words"
	Sentences  = "sentences"
	Paragraphs = "paragraphs"
)

// MaxCount bounds how many units are generated at once.
const MaxCount = 100

var vocabulary = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit
sed do eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim
veniam quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo
consequat duis aute irure in reprehenderit voluptate velit esse cillum fugiat
nulla pariatur excepteur sint occaecat cupidatat non proident sunt culpa qui
officia deserunt mollit anim id est laborum`)

// Generator draws words from its random source.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator. A nil src uses a randomly seeded PCG.
func New(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// Generate produces count units (clamped to 1..MaxCount) of kind. The
// first word of the output is replaced by the classic sentence.
func (g *Generator) Generate(kind string, count int) (string, error) {
	count = min(max(count, 1), MaxCount)

	parts := make([]string, count)
	var sep string
	switch kind {
	case Words:
		for i := range parts {
			parts[i] = g.word()
		}
		sep = " "
	case Sentences:
		for i := range parts {
			parts[i] = g.sentence(12)
		}
		sep = " "
	case Paragraphs, "":
		for i := range parts {
			parts[i] = g.paragraph(5)
		}
		sep = "\n\n"
	default:
		return "", apperr.Validationf("Unknown unit %q. Choose words, sentences or paragraphs.", kind)
	}

	out := strings.Join(parts, sep)
	if i := strings.IndexByte(out, ' '); i >= 0 {
		out = out[i+1:]
	}
	return Classic + " " + out, nil
}

func (g *Generator) word() string {
	return vocabulary[g.rng.IntN(len(vocabulary))]
}

func (g *Generator) sentence(words int) string {
	ws := make([]string, words)
	for i := range ws {
		ws[i] = g.word()
	}
	ws[0] = strings.ToUpper(ws[0][:1]) + ws[0][1:]
	return strings.Join(ws, " ") + "."
}

func (g *Generator) paragraph(sentences int) string {
	ss := make([]string, sentences)
	for i := range ss {
		ss[i] = g.sentence(8 + g.rng.IntN(8))
	}
	return strings.Join(ss, " ")
}
