package model

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCategory is assigned to articles that do not declare one.
const DefaultCategory = "General Knowledge"

// ErrMisconfigured indicates a fetch-form article without the correct/wrong
// word pair it needs to build a puzzle.
var ErrMisconfigured = errors.New("article missing correct/wrong word pair")

// ArticleMode says how an article produces its display text.
type ArticleMode int

const (
	// ModeExtract: the article carries pre-baked text with the wrong
	// words already substituted in.
	ModeExtract ArticleMode = iota

	// ModeFetch: the source text is fetched live by title and the wrong
	// word is substituted at load time.
	ModeFetch
)

// Replacement is one original→replacement word pair in a pre-baked
// article. Occurrence, when non-zero, is the 1-based instance of the
// original that was altered; zero means every instance was.
type Replacement struct {
	Original    string `yaml:"original" json:"original"`
	Replacement string `yaml:"replacement" json:"replacement"`
	Occurrence  int    `yaml:"occurrence,omitempty" json:"occurrence,omitempty"`
}

// Article is one puzzle's content definition. It comes in two forms:
//
// Pre-baked (extract form): Extract holds display-ready text and
// Replacements records which words in it are wrong and what they replaced.
//
// Fetch form: Correct/Wrong name the word pair; the extract is fetched by
// Title at load time and Correct is substituted with Wrong on the fly.
// Occurrence optionally targets a single instance of Correct, leaving the
// others intact as decoys; WrongOccurrence optionally pins which instance
// of Wrong in the final text is the planted one.
type Article struct {
	Title       string `yaml:"title" json:"title"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Thumbnail   string `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`

	Extract      string        `yaml:"extract,omitempty" json:"extract,omitempty"`
	Replacements []Replacement `yaml:"replacements,omitempty" json:"replacements,omitempty"`

	Correct         string `yaml:"correct,omitempty" json:"correct,omitempty"`
	Wrong           string `yaml:"wrong,omitempty" json:"wrong,omitempty"`
	Occurrence      int    `yaml:"occurrence,omitempty" json:"occurrence,omitempty"`
	WrongOccurrence int    `yaml:"wrong_occurrence,omitempty" json:"wrong_occurrence,omitempty"`
}

// Mode reports which form the article is in. Pre-baked text wins when both
// are present.
func (a *Article) Mode() ArticleMode {
	if strings.TrimSpace(a.Extract) != "" {
		return ModeExtract
	}
	return ModeFetch
}

// Validate checks that the article can actually produce a puzzle. A
// fetch-form article without both words of its pair is reported as
// ErrMisconfigured, the authoring defect surfaced to players as an
// explicit error rather than a broken puzzle.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article has no title")
	}
	switch a.Mode() {
	case ModeExtract:
		if len(a.Replacements) == 0 {
			return fmt.Errorf("article %q: %w", a.Title, ErrMisconfigured)
		}
		for i, r := range a.Replacements {
			if strings.TrimSpace(r.Original) == "" || strings.TrimSpace(r.Replacement) == "" {
				return fmt.Errorf("article %q replacement %d: %w", a.Title, i+1, ErrMisconfigured)
			}
		}
	case ModeFetch:
		if strings.TrimSpace(a.Correct) == "" || strings.TrimSpace(a.Wrong) == "" {
			return fmt.Errorf("article %q: %w", a.Title, ErrMisconfigured)
		}
	}
	return nil
}

// CategoryOrDefault returns the article's category, or DefaultCategory
// when none is set.
func (a *Article) CategoryOrDefault() string {
	if strings.TrimSpace(a.Category) == "" {
		return DefaultCategory
	}
	return a.Category
}

// ErrorWords lists the planted wrong words for this article, in authoring
// order.
func (a *Article) ErrorWords() []string {
	if a.Mode() == ModeFetch {
		return []string{a.Wrong}
	}
	words := make([]string, 0, len(a.Replacements))
	for _, r := range a.Replacements {
		words = append(words, r.Replacement)
	}
	return words
}

// CorrectWords lists the true words the planted ones displaced, aligned
// with ErrorWords.
func (a *Article) CorrectWords() []string {
	if a.Mode() == ModeFetch {
		return []string{a.Correct}
	}
	words := make([]string, 0, len(a.Replacements))
	for _, r := range a.Replacements {
		words = append(words, r.Original)
	}
	return words
}
