package puzzle

import (
	"time"

	"github.com/akosenkov/lapsus/internal/model"
)

// Epoch is the first-ever puzzle date. All numbering is relative to it
// and no puzzle exists before it.
var Epoch = model.Date{Year: 2024, Month: time.January, Day: 1}

// Number maps a civil date to its 1-based puzzle number. The epoch is
// puzzle #1; dates before it clamp to #1.
func Number(d model.Date) int {
	n := d.DaysSince(Epoch) + 1
	if n < 1 {
		return 1
	}
	return n
}

// DateFor is the inverse of Number: the date puzzle n ran on. Numbers
// below 1 clamp to the epoch.
func DateFor(n int) model.Date {
	if n < 1 {
		n = 1
	}
	return Epoch.AddDays(n - 1)
}

// ClampToEpoch floors d at the epoch.
func ClampToEpoch(d model.Date) model.Date {
	if d.Before(Epoch) {
		return Epoch
	}
	return d
}
