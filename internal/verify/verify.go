package verify

import (
	"context"
	"fmt"
	"sync"

	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/puzzle"
	"github.com/akosenkov/lapsus/internal/validate"
)

// Severity ranks a finding. Problems make a puzzle unplayable or
// unwinnable; warnings are authoring smells the game survives.
type Severity int

const (
	Warning Severity = iota
	Problem
)

func (s Severity) String() string {
	if s == Problem {
		return "problem"
	}
	return "warning"
}

// Finding is one defect in a catalog entry.
type Finding struct {
	Article  string
	Severity Severity
	Message  string
}

// TextSource supplies live article text for checking fetch-form entries.
type TextSource interface {
	Summary(ctx context.Context, title string) (model.PageSummary, error)
}

// Checker audits catalog content for the defects that surface as broken
// puzzles weeks later: misconfigured entries, extracts that never contain
// their planted words, occurrence targets beyond the instance count, and
// fetch-form word pairs that would miss against today's live text.
type Checker struct {
	source     TextSource
	maxWorkers int
}

// NewChecker builds a checker. source may be nil to skip live fetch
// checks.
func NewChecker(source TextSource, maxWorkers int) *Checker {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &Checker{source: source, maxWorkers: maxWorkers}
}

// Check audits every article in the catalog, scheduled overrides
// included, and returns the findings in catalog order.
func (c *Checker) Check(ctx context.Context, cat *model.Catalog) []Finding {
	if cat == nil {
		return []Finding{{Severity: Problem, Message: "no catalog"}}
	}

	var findings []Finding
	if len(cat.Articles) == 0 && len(cat.Scheduled) == 0 {
		findings = append(findings, Finding{Severity: Problem, Message: "catalog has no articles"})
	}

	articles := make([]model.Article, 0, len(cat.Articles)+len(cat.Scheduled))
	articles = append(articles, cat.Articles...)
	for key, a := range cat.Scheduled {
		if _, err := model.ParseDate(key); err != nil {
			findings = append(findings, Finding{
				Article:  a.Title,
				Severity: Problem,
				Message:  fmt.Sprintf("schedule key %q is not a date", key),
			})
		}
		articles = append(articles, a)
	}

	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		findings = append(findings, checkStatic(&a)...)
		if seen[a.Title] {
			findings = append(findings, Finding{
				Article:  a.Title,
				Severity: Warning,
				Message:  "duplicate title in catalog",
			})
		}
		seen[a.Title] = true
	}

	findings = append(findings, c.checkLive(ctx, articles)...)
	return findings
}

// checkStatic audits one article without touching the network.
func checkStatic(a *model.Article) []Finding {
	if err := a.Validate(); err != nil {
		return []Finding{{Article: a.Title, Severity: Problem, Message: err.Error()}}
	}

	var findings []Finding
	switch a.Mode() {
	case model.ModeExtract:
		distinct := make(map[string]bool)
		for _, r := range a.Replacements {
			n := validate.Normalize(r.Replacement)
			if distinct[n] {
				findings = append(findings, Finding{
					Article:  a.Title,
					Severity: Warning,
					Message:  fmt.Sprintf("planted word %q appears in several replacements", r.Replacement),
				})
			}
			distinct[n] = true

			if puzzle.CountInstances(a.Extract, r.Replacement) == 0 {
				findings = append(findings, Finding{
					Article:  a.Title,
					Severity: Problem,
					Message:  fmt.Sprintf("planted word %q never occurs in the extract", r.Replacement),
				})
			}
		}
		if a.WrongOccurrence != 0 && len(a.Replacements) == 1 {
			count := puzzle.CountInstances(a.Extract, a.Replacements[0].Replacement)
			if a.WrongOccurrence > count {
				findings = append(findings, Finding{
					Article:  a.Title,
					Severity: Problem,
					Message:  fmt.Sprintf("wrong_occurrence %d exceeds the %d instance(s) in the extract", a.WrongOccurrence, count),
				})
			}
		}
	case model.ModeFetch:
		if validate.Normalize(a.Correct) == validate.Normalize(a.Wrong) {
			findings = append(findings, Finding{
				Article:  a.Title,
				Severity: Problem,
				Message:  "correct and wrong words are the same word",
			})
		}
		if a.Occurrence < 0 {
			findings = append(findings, Finding{
				Article:  a.Title,
				Severity: Problem,
				Message:  fmt.Sprintf("negative occurrence %d", a.Occurrence),
			})
		}
	}
	return findings
}

// checkLive fetches each fetch-form article's live text concurrently and
// checks that the word substitution would actually land.
func (c *Checker) checkLive(ctx context.Context, articles []model.Article) []Finding {
	if c.source == nil {
		return nil
	}

	targets := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if a.Validate() == nil && a.Mode() == model.ModeFetch {
			targets = append(targets, a)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	results := make([][]Finding, len(targets))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.maxWorkers)

	for i, a := range targets {
		wg.Add(1)
		go func(idx int, art model.Article) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = []Finding{{
					Article:  art.Title,
					Severity: Warning,
					Message:  "live check cancelled",
				}}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = c.checkLiveOne(ctx, art)
		}(i, a)
	}
	wg.Wait()

	var findings []Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	return findings
}

func (c *Checker) checkLiveOne(ctx context.Context, a model.Article) []Finding {
	summary, err := c.source.Summary(ctx, a.Title)
	if err != nil {
		return []Finding{{
			Article:  a.Title,
			Severity: Warning,
			Message:  fmt.Sprintf("live fetch failed, puzzle would fall back: %v", err),
		}}
	}

	count := puzzle.CountInstances(summary.Text, a.Correct)
	if count == 0 {
		return []Finding{{
			Article:  a.Title,
			Severity: Problem,
			Message:  fmt.Sprintf("word %q never occurs in the live text, injection would miss", a.Correct),
		}}
	}
	if a.Occurrence > count {
		return []Finding{{
			Article:  a.Title,
			Severity: Problem,
			Message:  fmt.Sprintf("occurrence %d exceeds the %d live instance(s) of %q", a.Occurrence, count, a.Correct),
		}}
	}
	return nil
}
