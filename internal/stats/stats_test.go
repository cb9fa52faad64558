package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/store"
)

func seededStore(t *testing.T, outcomes map[string]bool) store.Store {
	t.Helper()
	s, err := store.OpenFile(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	for key, won := range outcomes {
		d, err := model.ParseDate(key)
		if err != nil {
			t.Fatalf("bad date %q: %v", key, err)
		}
		rec := model.CompletionRecord{
			Completed:   true,
			Won:         won,
			CompletedAt: time.Date(d.Year, d.Month, d.Day, 20, 0, 0, 0, time.UTC),
		}
		if err := s.Put(d, rec); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	return s
}

func TestComputeEmpty(t *testing.T) {
	s := seededStore(t, nil)

	sum, err := Compute(s, model.Date{Year: 2024, Month: time.June, Day: 10})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sum.Played != 0 || sum.Won != 0 || sum.WinRate != 0 {
		t.Errorf("expected zero summary, got %+v", sum)
	}
	if sum.Current != 0 || sum.Max != 0 {
		t.Errorf("expected zero streaks, got %+v", sum)
	}
}

func TestComputeCounts(t *testing.T) {
	s := seededStore(t, map[string]bool{
		"2024-06-05": true,
		"2024-06-06": false,
		"2024-06-07": true,
		"2024-06-08": true,
	})

	sum, err := Compute(s, model.Date{Year: 2024, Month: time.June, Day: 8})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sum.Played != 4 {
		t.Errorf("expected 4 played, got %d", sum.Played)
	}
	if sum.Won != 3 {
		t.Errorf("expected 3 won, got %d", sum.Won)
	}
	if sum.WinRate != 0.75 {
		t.Errorf("expected win rate 0.75, got %v", sum.WinRate)
	}
	if sum.Current != 2 {
		t.Errorf("expected current streak 2, got %d", sum.Current)
	}
	if sum.Max != 2 {
		t.Errorf("expected max streak 2, got %d", sum.Max)
	}
	if sum.First.String() != "2024-06-05" || sum.Last.String() != "2024-06-08" {
		t.Errorf("unexpected bounds: %s..%s", sum.First, sum.Last)
	}
}

func TestComputeMaxStreakInThePast(t *testing.T) {
	s := seededStore(t, map[string]bool{
		"2024-05-01": true,
		"2024-05-02": true,
		"2024-05-03": true,
		"2024-05-10": true,
	})

	sum, err := Compute(s, model.Date{Year: 2024, Month: time.May, Day: 10})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sum.Max != 3 {
		t.Errorf("expected max streak 3, got %d", sum.Max)
	}
	if sum.Current != 1 {
		t.Errorf("expected current streak 1, got %d", sum.Current)
	}
}

func TestComputeGapBreaksMax(t *testing.T) {
	s := seededStore(t, map[string]bool{
		"2024-05-01": true,
		"2024-05-03": true,
	})

	sum, err := Compute(s, model.Date{Year: 2024, Month: time.May, Day: 3})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sum.Max != 1 {
		t.Errorf("a missed day should break the streak, got max %d", sum.Max)
	}
}

func TestComputeTodayUndecided(t *testing.T) {
	s := seededStore(t, map[string]bool{
		"2024-06-07": true,
		"2024-06-08": true,
	})

	// Today (the 9th) is not yet played; yesterday's streak still shows.
	sum, err := Compute(s, model.Date{Year: 2024, Month: time.June, Day: 9})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sum.Current != 2 {
		t.Errorf("expected current streak 2 before today is decided, got %d", sum.Current)
	}
}
