package session

import (
	"time"

	"github.com/akosenkov/lapsus/internal/validate"
)

// Status is the lifecycle state of a play session.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in progress"
	}
}

// Terminal reports whether the status accepts no further guesses.
func (s Status) Terminal() bool {
	return s != InProgress
}

// Session tracks one play-through of one day's puzzle: the remaining
// attempt budget, status, and timing. Sessions are constructed fresh per
// puzzle load and never shared across puzzles.
type Session struct {
	TriesLeft int
	Status    Status
	StartedAt time.Time
	Elapsed   time.Duration
}

// Outcome is emitted exactly once, on the transition into a terminal
// state.
type Outcome struct {
	Status    Status
	Elapsed   time.Duration
	TriesLeft int
}

// New returns an in-progress session with the full attempt budget.
func New(maxTries int, startedAt time.Time) *Session {
	if maxTries < 1 {
		maxTries = 1
	}
	return &Session{
		TriesLeft: maxTries,
		Status:    InProgress,
		StartedAt: startedAt,
	}
}

// Apply feeds one verdict into the state machine at time now. A win ends
// the session immediately; an incorrect guess consumes one try and loses
// the session when the budget runs out. Terminal sessions absorb further
// verdicts unchanged, so re-entrant submissions are harmless no-ops.
//
// The returned Outcome is non-nil only on the terminal transition itself.
func (s *Session) Apply(verdict validate.Verdict, now time.Time) *Outcome {
	if s.Status.Terminal() {
		return nil
	}

	if verdict == validate.Win {
		s.Status = Won
		s.Elapsed = now.Sub(s.StartedAt)
		return &Outcome{Status: Won, Elapsed: s.Elapsed, TriesLeft: s.TriesLeft}
	}

	s.TriesLeft--
	if s.TriesLeft <= 0 {
		s.TriesLeft = 0
		s.Status = Lost
		s.Elapsed = now.Sub(s.StartedAt)
		return &Outcome{Status: Lost, Elapsed: s.Elapsed}
	}
	return nil
}

// Terminal reports whether the session accepts no further guesses.
func (s *Session) Terminal() bool {
	return s.Status.Terminal()
}
