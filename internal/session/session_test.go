package session

import (
	"testing"
	"time"

	"github.com/akosenkov/lapsus/internal/validate"
)

var t0 = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func TestSession_WinOnFirstTry(t *testing.T) {
	s := New(3, t0)
	if s.Status != InProgress || s.TriesLeft != 3 {
		t.Fatalf("fresh session in wrong state: %+v", s)
	}

	out := s.Apply(validate.Win, t0.Add(42*time.Second))
	if out == nil {
		t.Fatal("expected a terminal outcome")
	}
	if out.Status != Won {
		t.Errorf("outcome status = %s, want won", out.Status)
	}
	if out.Elapsed != 42*time.Second {
		t.Errorf("elapsed = %v, want 42s", out.Elapsed)
	}
	if out.TriesLeft != 3 {
		t.Errorf("tries left = %d, want 3 (no try consumed on a win)", out.TriesLeft)
	}
}

func TestSession_LossAfterBudgetExhausted(t *testing.T) {
	s := New(3, t0)

	// InProgress(3) -> (2) -> (1) -> Lost
	if out := s.Apply(validate.Incorrect, t0); out != nil {
		t.Fatalf("first miss should not be terminal, got %+v", out)
	}
	if s.TriesLeft != 2 {
		t.Errorf("tries left = %d, want 2", s.TriesLeft)
	}

	if out := s.Apply(validate.Incorrect, t0); out != nil {
		t.Fatalf("second miss should not be terminal, got %+v", out)
	}
	if s.TriesLeft != 1 {
		t.Errorf("tries left = %d, want 1", s.TriesLeft)
	}

	out := s.Apply(validate.Incorrect, t0.Add(90*time.Second))
	if out == nil {
		t.Fatal("third miss should lose the session")
	}
	if out.Status != Lost || s.Status != Lost {
		t.Errorf("status = %s, want lost", s.Status)
	}
	if s.TriesLeft != 0 {
		t.Errorf("tries left = %d, want 0", s.TriesLeft)
	}
	if out.Elapsed != 90*time.Second {
		t.Errorf("elapsed = %v, want 90s", out.Elapsed)
	}
}

func TestSession_WinOnLastTry(t *testing.T) {
	s := New(3, t0)
	s.Apply(validate.Incorrect, t0)
	s.Apply(validate.Incorrect, t0)

	out := s.Apply(validate.Win, t0)
	if out == nil || out.Status != Won {
		t.Fatalf("expected a win on the last try, got %+v", out)
	}
	if out.TriesLeft != 1 {
		t.Errorf("tries left at win = %d, want 1", out.TriesLeft)
	}
}

func TestSession_TerminalAbsorbsVerdicts(t *testing.T) {
	s := New(1, t0)
	if out := s.Apply(validate.Incorrect, t0); out == nil || out.Status != Lost {
		t.Fatalf("single-try session should lose immediately, got %+v", out)
	}

	// Neither a win nor a loss may change a decided session, and the
	// terminal outcome must not be emitted twice.
	if out := s.Apply(validate.Win, t0); out != nil {
		t.Errorf("terminal session emitted another outcome: %+v", out)
	}
	if s.Status != Lost {
		t.Errorf("terminal status changed to %s", s.Status)
	}
	if out := s.Apply(validate.Incorrect, t0); out != nil {
		t.Errorf("terminal session emitted another outcome: %+v", out)
	}
	if s.TriesLeft != 0 {
		t.Errorf("tries left changed on a terminal session: %d", s.TriesLeft)
	}
}

func TestNew_MinimumBudget(t *testing.T) {
	s := New(0, t0)
	if s.TriesLeft != 1 {
		t.Errorf("budget floor: tries left = %d, want 1", s.TriesLeft)
	}
}
