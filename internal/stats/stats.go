package stats

import (
	"fmt"

	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/store"
)

// Summary aggregates a player's completion history.
type Summary struct {
	Played  int
	Won     int
	WinRate float64

	// Current is the running streak of consecutive won days ending at
	// today, with today itself exempt until it is decided.
	Current int

	// Max is the longest streak of consecutive won days on record.
	Max int

	// First and Last bound the recorded history; zero values when
	// nothing has been played.
	First model.Date
	Last  model.Date
}

// Compute walks the completion ledger and aggregates it as of today.
func Compute(s store.Store, today model.Date) (Summary, error) {
	dates, err := s.Dates()
	if err != nil {
		return Summary{}, fmt.Errorf("list completions: %w", err)
	}

	var sum Summary
	var run int
	var prevWon model.Date
	for _, d := range dates {
		rec, ok, err := s.Get(d)
		if err != nil {
			return Summary{}, fmt.Errorf("read completion %s: %w", d, err)
		}
		if !ok {
			continue
		}

		if sum.Played == 0 {
			sum.First = d
		}
		sum.Last = d
		sum.Played++

		if !rec.Won {
			run = 0
			continue
		}
		sum.Won++
		if run > 0 && d == prevWon.AddDays(1) {
			run++
		} else {
			run = 1
		}
		prevWon = d
		if run > sum.Max {
			sum.Max = run
		}
	}

	if sum.Played > 0 {
		sum.WinRate = float64(sum.Won) / float64(sum.Played)
	}

	current, err := store.Streak(s, today)
	if err != nil {
		return Summary{}, err
	}
	sum.Current = current
	return sum, nil
}
