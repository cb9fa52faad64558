package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/puzzle"
	"github.com/akosenkov/lapsus/internal/session"
	"github.com/akosenkov/lapsus/internal/store"
	"github.com/akosenkov/lapsus/internal/validate"
)

var (
	// ErrEmptyGuess rejects a submission that carried no words. No try is
	// consumed.
	ErrEmptyGuess = errors.New("empty guess")

	// ErrRoundOver rejects submissions to a decided round.
	ErrRoundOver = errors.New("round is already over")

	// ErrSuperseded rejects submissions from a round a newer Load has
	// replaced.
	ErrSuperseded = errors.New("round superseded by a newer load")
)

// TextSource supplies live article text for fetch-form puzzles. May be
// nil, in which case every fetch-form article falls back to the built-in
// one.
type TextSource interface {
	Summary(ctx context.Context, title string) (model.PageSummary, error)
}

// Engine runs puzzle days end to end: resolve the date's article, build
// the display text with the wrong words planted in, judge guesses, and
// record the outcome once. One engine serves one player.
type Engine struct {
	catalog   *model.Catalog
	source    TextSource
	store     store.Store
	validator *validate.Validator
	maxTries  int

	now func() time.Time

	mu  sync.Mutex
	gen int
}

// NewEngine wires an engine from its parts. st may be nil to play without
// persistence.
func NewEngine(cfg *model.Config, cat *model.Catalog, source TextSource, st store.Store) *Engine {
	return &Engine{
		catalog:   cat,
		source:    source,
		store:     st,
		validator: validate.NewValidator(validate.ThresholdsFrom(cfg.Match)),
		maxTries:  cfg.Game.MaxTries,
		now:       time.Now,
	}
}

// Load builds the round for a date. Dates before the first puzzle clamp
// to it. A date whose outcome is already on record comes back as a replay
// view carrying the stored record instead of a playable session.
//
// Each Load supersedes all rounds loaded before it.
func (e *Engine) Load(ctx context.Context, d model.Date) (*Round, error) {
	d = puzzle.ClampToEpoch(d)

	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	round := &Round{
		Date:   d,
		Number: puzzle.Number(d),
		gen:    gen,
	}

	if e.store != nil {
		rec, ok, err := e.store.Get(d)
		if err != nil {
			return nil, fmt.Errorf("load completion record: %w", err)
		}
		if ok {
			round.Record = &rec
			if a, err := puzzle.Select(d, e.catalog); err == nil {
				round.Article = a
			}
			return round, nil
		}
	}

	article, err := puzzle.Select(d, e.catalog)
	if err != nil {
		return nil, err
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}

	switch article.Mode() {
	case model.ModeExtract:
		round.Text = article.Extract
		round.targetOccurrence = extractTarget(&article)
	case model.ModeFetch:
		article = e.loadFetchForm(ctx, article, round)
	}

	round.Article = article
	round.errorWords = article.ErrorWords()
	round.correctWords = article.CorrectWords()
	round.Tokens = puzzle.Tokenize(round.Text, round.errorWords)
	round.Session = session.New(e.maxTries, e.now())
	return round, nil
}

// loadFetchForm fetches the article's live text and plants the wrong word
// in it. Any fetch failure swaps in the built-in fallback article, so the
// day always has a puzzle.
func (e *Engine) loadFetchForm(ctx context.Context, article model.Article, round *Round) model.Article {
	var summary model.PageSummary
	var err error
	if e.source != nil {
		summary, err = e.source.Summary(ctx, article.Title)
	} else {
		err = errors.New("no text source configured")
	}
	if err != nil {
		fallback := model.FallbackArticle()
		round.Fallback = true
		round.Text = fallback.Extract
		round.targetOccurrence = extractTarget(&fallback)
		return fallback
	}

	if article.Description == "" {
		article.Description = summary.Description
	}
	if article.Thumbnail == "" {
		article.Thumbnail = summary.Thumbnail
	}

	inj := puzzle.Inject(summary.Text, model.Replacement{
		Original:    article.Correct,
		Replacement: article.Wrong,
		Occurrence:  article.Occurrence,
	})
	round.Text = inj.Text
	round.InjectionMissed = inj.Missed()
	if article.WrongOccurrence != 0 {
		round.targetOccurrence = article.WrongOccurrence
	} else {
		round.targetOccurrence = inj.WrongOccurrence
	}
	return article
}

// extractTarget is the occurrence restriction for a pre-baked article.
// Only single-word puzzles can target an instance; with several distinct
// wrong words the ordinal would be ambiguous.
func extractTarget(a *model.Article) int {
	distinct := make(map[string]bool)
	for _, w := range a.ErrorWords() {
		if n := validate.Normalize(w); n != "" {
			distinct[n] = true
		}
	}
	if len(distinct) != 1 {
		return 0
	}
	return a.WrongOccurrence
}

// SubmitResult is the engine's judgement of one guess.
type SubmitResult struct {
	Result    validate.Result
	TriesLeft int

	// Outcome is non-nil exactly when this guess ended the round.
	Outcome *session.Outcome
}

// Submit judges one guess against the round. A terminal outcome is
// written to the completion store before returning; when that write
// fails the result is still returned, alongside the storage error.
func (e *Engine) Submit(round *Round, selected []validate.Selection) (*SubmitResult, error) {
	if round == nil || round.Completed() {
		return nil, ErrRoundOver
	}

	selected = dropBlank(selected)
	if len(selected) == 0 {
		return nil, ErrEmptyGuess
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if round.gen != e.gen {
		return nil, ErrSuperseded
	}
	if round.Session == nil || round.Session.Terminal() {
		return nil, ErrRoundOver
	}

	res := e.validator.Validate(selected, round.errorWords, round.correctWords, round.targetOccurrence)
	outcome := round.Session.Apply(res.Verdict, e.now())

	sr := &SubmitResult{
		Result:    res,
		TriesLeft: round.Session.TriesLeft,
		Outcome:   outcome,
	}
	if outcome == nil {
		return sr, nil
	}

	rec := model.CompletionRecord{
		Completed:   true,
		Won:         outcome.Status == session.Won,
		CompletedAt: e.now(),
	}
	round.Record = &rec
	if e.store != nil {
		if err := e.store.Put(round.Date, rec); err != nil && !errors.Is(err, store.ErrAlreadyRecorded) {
			return sr, fmt.Errorf("record completion: %w", err)
		}
	}
	return sr, nil
}

func dropBlank(selected []validate.Selection) []validate.Selection {
	kept := make([]validate.Selection, 0, len(selected))
	for _, s := range selected {
		if validate.Normalize(s.Text) != "" {
			kept = append(kept, s)
		}
	}
	return kept
}
