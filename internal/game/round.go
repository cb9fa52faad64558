package game

import (
	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/puzzle"
	"github.com/akosenkov/lapsus/internal/session"
)

// Round is one loaded puzzle day: the resolved article, the display text
// with the wrong words planted in, and the live session accepting guesses.
// Rounds come from Engine.Load and go back into Engine.Submit.
type Round struct {
	Date    model.Date
	Number  int
	Article model.Article

	Text   string
	Tokens []puzzle.Token

	Session *session.Session

	// Fallback marks a round served from the built-in article after the
	// live fetch failed. The day still gets a puzzle, just not the one
	// the catalog scheduled.
	Fallback bool

	// InjectionMissed marks a fetch-form round whose word pair never
	// occurred in the fetched text. The round plays on, on unaltered
	// text.
	InjectionMissed bool

	// Record is the stored outcome for an already-completed date. When
	// set the round is a replay view: no session, no submissions.
	Record *model.CompletionRecord

	errorWords       []string
	correctWords     []string
	targetOccurrence int
	gen              int
}

// Completed reports whether this date's outcome is already on record.
func (r *Round) Completed() bool {
	return r.Record != nil
}

// ErrorWords lists the wrong words planted in the round's text.
func (r *Round) ErrorWords() []string {
	return r.errorWords
}

// Correction pairs one planted wrong word with the true word it displaced.
type Correction struct {
	Wrong   string
	Correct string
}

// Corrections lists the round's word pairs, for revealing the answer once
// the round is decided.
func (r *Round) Corrections() []Correction {
	out := make([]Correction, 0, len(r.errorWords))
	for i, w := range r.errorWords {
		c := Correction{Wrong: w}
		if i < len(r.correctWords) {
			c.Correct = r.correctWords[i]
		}
		out = append(out, c)
	}
	return out
}
