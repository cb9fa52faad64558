package store

import (
	"errors"
	"fmt"

	"github.com/akosenkov/lapsus/internal/model"
)

// ErrAlreadyRecorded is returned by Put when the date already has an
// outcome. Completion records are write-once: a decided day is history.
var ErrAlreadyRecorded = errors.New("completion already recorded for this date")

// Store is the per-date completion ledger.
type Store interface {
	// Get returns the record for a date, with ok=false when the date has
	// never been completed.
	Get(date model.Date) (model.CompletionRecord, bool, error)

	// Put records a date's outcome. Writing to an already-recorded date
	// fails with ErrAlreadyRecorded.
	Put(date model.Date, rec model.CompletionRecord) error

	// Dates lists every recorded date in ascending order.
	Dates() ([]model.Date, error)

	Close() error
}

// Open constructs the backend named by cfg: "bolt" (the default) or
// "file".
func Open(cfg model.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "bolt":
		return OpenBolt(cfg.Path)
	case "file":
		return OpenFile(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Streak counts consecutive won days walking backward from today.
//
// Today itself is exempt: a day that is unplayed or freshly lost does not
// break yesterday's run until the calendar moves on, so the streak shown
// before solving today's puzzle is still yesterday's streak. Any earlier
// missing or lost day ends the walk.
func Streak(s Store, today model.Date) (int, error) {
	count := 0
	for i := 0; ; i++ {
		rec, ok, err := s.Get(today.AddDays(-i))
		if err != nil {
			return 0, fmt.Errorf("streak lookup: %w", err)
		}
		if ok && rec.Won {
			count++
			continue
		}
		if i == 0 {
			continue
		}
		return count, nil
	}
}
