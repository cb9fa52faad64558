package puzzle

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/akosenkov/lapsus/internal/model"
)

// Injection is the outcome of planting one wrong word into source text.
type Injection struct {
	// Text is the display text with the substitution applied. Equal to
	// the source when the original word was never found: a silent miss,
	// which is a content-authoring defect rather than a runtime fault,
	// detectable by comparing Text to the input.
	Text string

	// Applied is how many instances were substituted.
	Applied int

	// AlteredOccurrence is the 1-based ordinal of the instance of the
	// original word that was replaced, when a single one was targeted.
	// Zero when all instances were substituted or none matched.
	AlteredOccurrence int

	// WrongOccurrence is the 1-based ordinal of the planted word among
	// all instances of the wrong word in Text, when a single instance
	// was targeted. The validator needs it to tell the planted instance
	// from decoys that occur naturally in the text.
	WrongOccurrence int
}

// Missed reports whether the injection changed nothing.
func (inj Injection) Missed() bool {
	return inj.Applied == 0
}

// Inject locates case-insensitive, word-boundary instances of r.Original
// in source and substitutes r.Replacement. With r.Occurrence set (1-based)
// only that instance changes and the rest stay behind untouched as decoys;
// unset substitutes every instance. Each substituted word keeps the
// capitalization of the instance it replaces.
func Inject(source string, r model.Replacement) Injection {
	miss := Injection{Text: source}

	original := strings.TrimSpace(r.Original)
	wrong := strings.TrimSpace(r.Replacement)
	if original == "" || wrong == "" {
		return miss
	}

	re, err := wordPattern(original)
	if err != nil {
		return miss
	}
	matches := re.FindAllStringIndex(source, -1)
	if len(matches) == 0 || r.Occurrence > len(matches) {
		return miss
	}

	var b strings.Builder
	b.Grow(len(source) + len(wrong))

	inj := Injection{}
	prev := 0
	plantedAt := -1
	for i, m := range matches {
		ordinal := i + 1
		if r.Occurrence != 0 && ordinal != r.Occurrence {
			continue
		}
		b.WriteString(source[prev:m[0]])
		if r.Occurrence != 0 {
			plantedAt = b.Len()
			inj.AlteredOccurrence = ordinal
		}
		b.WriteString(matchCase(source[m[0]:m[1]], wrong))
		prev = m[1]
		inj.Applied++
	}
	b.WriteString(source[prev:])
	inj.Text = b.String()

	if plantedAt >= 0 {
		inj.WrongOccurrence = ordinalAt(inj.Text, wrong, plantedAt)
	}
	return inj
}

// CountInstances counts the case-insensitive, word-boundary instances of
// word in text.
func CountInstances(text, word string) int {
	word = strings.TrimSpace(word)
	if word == "" {
		return 0
	}
	re, err := wordPattern(word)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// wordPattern compiles a case-insensitive, word-boundary pattern for the
// literal word or phrase.
func wordPattern(word string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

// matchCase transfers the leading capitalization of found onto repl, so a
// sentence-initial word stays sentence-initial after substitution.
func matchCase(found, repl string) string {
	fr, _ := utf8.DecodeRuneInString(found)
	rr, size := utf8.DecodeRuneInString(repl)
	if fr == utf8.RuneError || rr == utf8.RuneError {
		return repl
	}
	if unicode.IsUpper(fr) {
		return string(unicode.ToUpper(rr)) + repl[size:]
	}
	return string(unicode.ToLower(rr)) + repl[size:]
}

// ordinalAt returns the 1-based ordinal, among all word-boundary instances
// of word in text, of the instance starting at byte offset. Zero when no
// instance starts there.
func ordinalAt(text, word string, offset int) int {
	re, err := wordPattern(word)
	if err != nil {
		return 0
	}
	for i, m := range re.FindAllStringIndex(text, -1) {
		if m[0] == offset {
			return i + 1
		}
	}
	return 0
}
