package engine

import (
	"time"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

// CategoryColumns are the columns selectable in stages 1 and 2.
var CategoryColumns = []fruit.Column{fruit.ColColour, fruit.ColHardness}

// Selection is the set of active values for one category column.
// An empty (or nil) Selection selects nothing.
type Selection []string

// Has reports whether v is selected.
func (s Selection) Has(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Criteria drives stages 1 and 2.
type Criteria struct {
	// Search must be a substring of the fruit name. Case-sensitive; empty
	// matches every row.
	Search string
	// Categories maps a category column to its active values. Columns
	// without an entry are not constrained.
	Categories map[fruit.Column]Selection
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Clamp limits r to [lo, hi]. The result may be inverted (From after To)
// when r lies entirely outside the bounds, in which case it selects nothing.
func (r DateRange) Clamp(lo, hi time.Time) DateRange {
	out := r
	if out.From.Before(lo) {
		out.From = lo
	}
	if out.To.After(hi) {
		out.To = hi
	}
	return out
}

// Includes reports whether t falls within the range, bounds included.
func (r DateRange) Includes(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ViewCriteria drives stage 3 for one view.
type ViewCriteria struct {
	// DateColumn is the date column the range and sort apply to.
	DateColumn fruit.Column
	// Range restricts DateColumn. Nil means the full span of the input.
	Range *DateRange
	// Text must appear in at least one rendered field. Empty is a no-op.
	Text string
	// SortByDate orders the result by DateColumn, ascending and stable.
	SortByDate bool
}
