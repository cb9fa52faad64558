package validate

// Verdict classifies one submission.
type Verdict int

const (
	Incorrect Verdict = iota
	Win
)

func (v Verdict) String() string {
	if v == Win {
		return "win"
	}
	return "incorrect"
}

// Selection is one token the player picked, together with the occurrence
// tag the renderer attached to it: the 1-based ordinal of the token among
// instances of the same wrong word, zero for untagged tokens.
type Selection struct {
	Text       string
	Occurrence int
}

// Result is a verdict with per-selection tallies, kept so callers can
// tell the player what went wrong rather than just that it did.
type Result struct {
	Verdict Verdict

	// Hits: selections matching an error word at an acceptable instance.
	Hits int
	// WrongInstance: right word, wrong place. A decoy instance of the
	// error word was picked instead of the planted one.
	WrongInstance int
	// TrueFacts: selections matching a correct word. The player flagged
	// text that is actually true.
	TrueFacts int
	// Extras: selections matching neither list.
	Extras int
}

// Validator applies the win rules for a puzzle's word sets.
type Validator struct {
	thresholds Thresholds
}

// NewValidator builds a Validator with the given matcher thresholds.
func NewValidator(t Thresholds) *Validator {
	return &Validator{thresholds: t}
}

// Validate classifies one submission against the puzzle's planted error
// words and their true counterparts.
//
// Every selection is tested against the error words first and the correct
// words second, under the same fuzzy rule, so a token that could match
// either is always credited as an error hit. targetOccurrence, when
// non-zero, restricts which instance of the single error word counts.
//
// Winning requires every selection to be an error hit; with several
// distinct error words planted, also exactly one selection per distinct
// word.
func (v *Validator) Validate(selected []Selection, errorWords, correctWords []string, targetOccurrence int) Result {
	var res Result
	matched := make(map[string]bool)

	for _, sel := range selected {
		if word, ok := v.thresholds.MatchAny(sel.Text, errorWords); ok {
			if targetOccurrence != 0 && sel.Occurrence != targetOccurrence {
				res.WrongInstance++
				continue
			}
			res.Hits++
			matched[Normalize(word)] = true
			continue
		}
		if _, ok := v.thresholds.MatchAny(sel.Text, correctWords); ok {
			res.TrueFacts++
			continue
		}
		res.Extras++
	}

	if res.Hits == 0 || res.WrongInstance+res.TrueFacts+res.Extras > 0 {
		return res
	}

	distinct := distinctWords(errorWords)
	if len(distinct) <= 1 {
		res.Verdict = Win
		return res
	}

	// Multi-error puzzles: each distinct planted word must be picked
	// exactly once.
	if len(selected) == len(distinct) && len(matched) == len(distinct) {
		res.Verdict = Win
	}
	return res
}

func distinctWords(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			set[n] = true
		}
	}
	return set
}
