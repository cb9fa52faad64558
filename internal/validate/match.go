package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/akosenkov/lapsus/internal/model"
)

// Thresholds tune the fuzzy matcher. MinFuzzyLen keeps short common words
// out of substring matching entirely; MaxLenDelta caps how far apart in
// length a token and a word may be and still count as the same word.
type Thresholds struct {
	MinFuzzyLen int
	MaxLenDelta int
}

// DefaultThresholds are the tuned values the game ships with. They are
// heuristics: "runs" matches "run", while "few" and "new" stay apart.
func DefaultThresholds() Thresholds {
	return Thresholds{MinFuzzyLen: 3, MaxLenDelta: 2}
}

// ThresholdsFrom lifts matcher settings out of the config, falling back
// to the defaults for unset values.
func ThresholdsFrom(cfg model.MatchConfig) Thresholds {
	t := DefaultThresholds()
	if cfg.MinFuzzyLen > 0 {
		t.MinFuzzyLen = cfg.MinFuzzyLen
	}
	if cfg.MaxLenDelta > 0 {
		t.MaxLenDelta = cfg.MaxLenDelta
	}
	return t
}

// Normalize lowercases s and strips every rune that is not a letter or a
// digit. Both sides of every match comparison go through this, so
// punctuation and case can never split a word from itself ("Paris," and
// "paris" normalize identically).
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches reports whether a guessed token counts as word. The rule is
// exact equality after normalization, or a bounded substring match: the
// token must be at least MinFuzzyLen runes, within MaxLenDelta runes of
// the word's length, and one of the two must contain the other. The same
// rule is applied to the error-word and correct-word lists so the two
// checks can never disagree about what a token "is".
func (t Thresholds) Matches(token, word string) bool {
	token = Normalize(token)
	word = Normalize(word)
	if token == "" || word == "" {
		return false
	}
	if token == word {
		return true
	}

	tokenLen := utf8.RuneCountInString(token)
	if tokenLen < t.MinFuzzyLen {
		return false
	}
	delta := tokenLen - utf8.RuneCountInString(word)
	if delta < 0 {
		delta = -delta
	}
	if delta > t.MaxLenDelta {
		return false
	}
	return strings.Contains(token, word) || strings.Contains(word, token)
}

// MatchAny returns the first word in words that the token matches, with
// ok=false when none do.
func (t Thresholds) MatchAny(token string, words []string) (string, bool) {
	for _, w := range words {
		if t.Matches(token, w) {
			return w, true
		}
	}
	return "", false
}
