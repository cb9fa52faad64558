package puzzle

import (
	"errors"

	"github.com/akosenkov/lapsus/internal/model"
)

// ErrNoContent indicates the catalog has nothing to serve for a date.
var ErrNoContent = errors.New("no puzzle content available")

// Select resolves which article a date gets. A date-pinned schedule entry
// always wins; otherwise the ordered article list is cycled by puzzle
// number, so consecutive days walk the list and wrap around. An empty
// catalog yields ErrNoContent.
func Select(d model.Date, cat *model.Catalog) (model.Article, error) {
	if cat == nil {
		return model.Article{}, ErrNoContent
	}
	if a, ok := cat.ScheduledFor(d); ok {
		return a, nil
	}
	if len(cat.Articles) == 0 {
		return model.Article{}, ErrNoContent
	}
	return cat.Articles[(Number(d)-1)%len(cat.Articles)], nil
}
