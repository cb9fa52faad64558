package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/akosenkov/lapsus/internal/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func record(won bool) model.CompletionRecord {
	return model.CompletionRecord{
		Completed:   true,
		Won:         won,
		CompletedAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
}

// openBackends builds one store of each backend, registering cleanup.
func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	bolt, err := OpenBolt(filepath.Join(t.TempDir(), "lapsus.db"))
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	file, err := OpenFile(filepath.Join(t.TempDir(), "completions.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	stores := map[string]Store{"bolt": bolt, "file": file}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStores_PutGet(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			d := mustDate(t, "2024-03-09")

			if _, ok, err := s.Get(d); err != nil || ok {
				t.Fatalf("fresh store Get = (ok=%v, err=%v), want not found", ok, err)
			}

			if err := s.Put(d, record(true)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			rec, ok, err := s.Get(d)
			if err != nil || !ok {
				t.Fatalf("Get after Put = (ok=%v, err=%v)", ok, err)
			}
			if !rec.Completed || !rec.Won {
				t.Errorf("unexpected record: %+v", rec)
			}
			if rec.CompletedAt.IsZero() {
				t.Error("CompletedAt not persisted")
			}
		})
	}
}

func TestStores_WriteOnce(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			d := mustDate(t, "2024-03-09")

			if err := s.Put(d, record(false)); err != nil {
				t.Fatalf("first Put failed: %v", err)
			}

			err := s.Put(d, record(true))
			if !errors.Is(err, ErrAlreadyRecorded) {
				t.Fatalf("second Put = %v, want ErrAlreadyRecorded", err)
			}

			// The original outcome must survive the refused overwrite.
			rec, _, _ := s.Get(d)
			if rec.Won {
				t.Error("refused Put still altered the record")
			}
		})
	}
}

func TestStores_DatesSorted(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, day := range []string{"2024-03-09", "2024-01-15", "2024-02-01"} {
				if err := s.Put(mustDate(t, day), record(true)); err != nil {
					t.Fatalf("Put(%s): %v", day, err)
				}
			}

			dates, err := s.Dates()
			if err != nil {
				t.Fatalf("Dates failed: %v", err)
			}
			want := []string{"2024-01-15", "2024-02-01", "2024-03-09"}
			if len(dates) != len(want) {
				t.Fatalf("got %d dates, want %d", len(dates), len(want))
			}
			for i, d := range dates {
				if d.String() != want[i] {
					t.Errorf("dates[%d] = %s, want %s", i, d, want[i])
				}
			}
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lapsus.db")
	d := mustDate(t, "2024-03-09")

	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if err := s.Put(d, record(true)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	rec, ok, err := reopened.Get(d)
	if err != nil || !ok || !rec.Won {
		t.Errorf("record lost across reopen: (ok=%v, rec=%+v, err=%v)", ok, rec, err)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completions.json")
	d := mustDate(t, "2024-03-09")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := s.Put(d, record(false)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rec, ok, err := reopened.Get(d)
	if err != nil || !ok || rec.Won {
		t.Errorf("record lost across reopen: (ok=%v, rec=%+v, err=%v)", ok, rec, err)
	}
}

func TestOpen_BackendSelection(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(model.StoreConfig{Backend: "bolt", Path: filepath.Join(dir, "a.db")})
	if err != nil {
		t.Fatalf("bolt backend: %v", err)
	}
	s.Close()

	s, err = Open(model.StoreConfig{Backend: "", Path: filepath.Join(dir, "b.db")})
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	s.Close()

	s, err = Open(model.StoreConfig{Backend: "file", Path: filepath.Join(dir, "c.json")})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	s.Close()

	if _, err := Open(model.StoreConfig{Backend: "postgres", Path: "x"}); err == nil {
		t.Fatal("unknown backend should fail")
	}
}

// seedStore fills a fresh file store with outcomes keyed by date string.
func seedStore(t *testing.T, outcomes map[string]bool) Store {
	t.Helper()
	s, err := OpenFile(filepath.Join(t.TempDir(), "completions.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	for day, won := range outcomes {
		if err := s.Put(mustDate(t, day), record(won)); err != nil {
			t.Fatalf("Put(%s): %v", day, err)
		}
	}
	return s
}

func TestStreak(t *testing.T) {
	today := "2024-03-10"

	tests := []struct {
		name     string
		outcomes map[string]bool
		want     int
	}{
		{
			name: "three wins ending yesterday, today unplayed",
			outcomes: map[string]bool{
				"2024-03-07": true,
				"2024-03-08": true,
				"2024-03-09": true,
			},
			want: 3,
		},
		{
			name: "today won extends the run",
			outcomes: map[string]bool{
				"2024-03-08": true,
				"2024-03-09": true,
				"2024-03-10": true,
			},
			want: 3,
		},
		{
			name: "today lost keeps yesterday's run alive",
			outcomes: map[string]bool{
				"2024-03-08": true,
				"2024-03-09": true,
				"2024-03-10": false,
			},
			want: 2,
		},
		{
			name: "loss before yesterday ends the run",
			outcomes: map[string]bool{
				"2024-03-06": true,
				"2024-03-07": false,
				"2024-03-08": true,
				"2024-03-09": true,
			},
			want: 2,
		},
		{
			name: "gap ends the run",
			outcomes: map[string]bool{
				"2024-03-05": true,
				"2024-03-06": true,
				// 2024-03-07 missing
				"2024-03-08": true,
				"2024-03-09": true,
			},
			want: 2,
		},
		{
			name:     "empty history",
			outcomes: map[string]bool{},
			want:     0,
		},
		{
			name: "only today lost",
			outcomes: map[string]bool{
				"2024-03-10": false,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seedStore(t, tt.outcomes)
			got, err := Streak(s, mustDate(t, today))
			if err != nil {
				t.Fatalf("Streak failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("streak = %d, want %d", got, tt.want)
			}
		})
	}
}
