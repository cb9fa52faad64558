package puzzle

import (
	"strings"

	"github.com/akosenkov/lapsus/internal/validate"
)

// Token is one whitespace-delimited word of display text. WrongOccurrence
// is the side channel the renderer attaches to wrong-word instances: the
// 1-based ordinal among instances of the same wrong word, zero for
// ordinary tokens. Occurrence-aware validation reads the tag back off the
// player's selection.
type Token struct {
	Text            string
	WrongOccurrence int
}

// Tokenize splits display text into tokens and tags every instance of a
// wrong word with its ordinal. Comparison runs on normalized forms, so
// trailing punctuation or sentence-initial capitalization does not hide
// an instance.
func Tokenize(text string, wrongWords []string) []Token {
	wrong := make(map[string]bool, len(wrongWords))
	for _, w := range wrongWords {
		if n := validate.Normalize(w); n != "" {
			wrong[n] = true
		}
	}

	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	seen := make(map[string]int)
	for _, f := range fields {
		tok := Token{Text: f}
		if n := validate.Normalize(f); n != "" && wrong[n] {
			seen[n]++
			tok.WrongOccurrence = seen[n]
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
