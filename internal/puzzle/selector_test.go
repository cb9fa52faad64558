package puzzle

import (
	"errors"
	"testing"

	"github.com/akosenkov/lapsus/internal/model"
)

func threeArticleCatalog() *model.Catalog {
	return &model.Catalog{
		Version: 1,
		Articles: []model.Article{
			{Title: "First", Correct: "a", Wrong: "b"},
			{Title: "Second", Correct: "c", Wrong: "d"},
			{Title: "Third", Correct: "e", Wrong: "f"},
		},
	}
}

func TestSelect_CyclesArticleList(t *testing.T) {
	cat := threeArticleCatalog()

	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "First"}, // puzzle #1
		{"2024-01-02", "Second"},
		{"2024-01-03", "Third"},
		{"2024-01-04", "First"}, // wraps around
		{"2024-01-07", "First"},
	}

	for _, tt := range tests {
		a, err := Select(mustDate(t, tt.date), cat)
		if err != nil {
			t.Fatalf("Select(%s) returned error: %v", tt.date, err)
		}
		if a.Title != tt.want {
			t.Errorf("Select(%s) = %s, want %s", tt.date, a.Title, tt.want)
		}
	}
}

func TestSelect_ScheduledWins(t *testing.T) {
	cat := threeArticleCatalog()
	cat.Scheduled = map[string]model.Article{
		"2024-01-02": {Title: "Pinned", Correct: "x", Wrong: "y"},
	}

	a, err := Select(mustDate(t, "2024-01-02"), cat)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if a.Title != "Pinned" {
		t.Errorf("scheduled entry should win over the cycle, got %s", a.Title)
	}

	// Neighboring dates still cycle.
	a, _ = Select(mustDate(t, "2024-01-03"), cat)
	if a.Title != "Third" {
		t.Errorf("unscheduled date should cycle, got %s", a.Title)
	}
}

func TestSelect_NoContent(t *testing.T) {
	if _, err := Select(mustDate(t, "2024-01-01"), nil); !errors.Is(err, ErrNoContent) {
		t.Errorf("nil catalog: got %v, want ErrNoContent", err)
	}

	empty := &model.Catalog{Version: 1}
	if _, err := Select(mustDate(t, "2024-01-01"), empty); !errors.Is(err, ErrNoContent) {
		t.Errorf("empty catalog: got %v, want ErrNoContent", err)
	}

	// Scheduled-only catalogs serve pinned dates and nothing else.
	pinnedOnly := &model.Catalog{
		Version: 1,
		Scheduled: map[string]model.Article{
			"2024-05-01": {Title: "Pinned", Correct: "x", Wrong: "y"},
		},
	}
	if a, err := Select(mustDate(t, "2024-05-01"), pinnedOnly); err != nil || a.Title != "Pinned" {
		t.Errorf("pinned date: got (%v, %v), want the pinned article", a.Title, err)
	}
	if _, err := Select(mustDate(t, "2024-05-02"), pinnedOnly); !errors.Is(err, ErrNoContent) {
		t.Errorf("unpinned date: got %v, want ErrNoContent", err)
	}
}
